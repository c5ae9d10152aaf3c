package domain

import "time"

// Category groups tasks. Owned either by a user or by a household (Owner).
type Category struct {
	ID        int64
	Name      string
	Emoji     string
	Color     string
	Owner     Owner
	IsDefault bool
	CreatedAt time.Time
}

// CategoryWithCount is a category annotated with the number of tasks the
// viewer can see that reference it.
type CategoryWithCount struct {
	Category
	TaskCount int
}

// DefaultCategories is the fixed set seeded for a scope that has none yet.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Cleaning", Emoji: "🧹", Color: "#60a5fa", IsDefault: true},
		{Name: "Kitchen", Emoji: "🍳", Color: "#f59e0b", IsDefault: true},
		{Name: "Laundry", Emoji: "👕", Color: "#818cf8", IsDefault: true},
		{Name: "Shopping", Emoji: "🛒", Color: "#34d399", IsDefault: true},
		{Name: "Maintenance", Emoji: "🔧", Color: "#f87171", IsDefault: true},
		{Name: "Outdoor", Emoji: "🌿", Color: "#4ade80", IsDefault: true},
		{Name: "Pets", Emoji: "🐾", Color: "#fbbf24", IsDefault: true},
		{Name: "Finance", Emoji: "💰", Color: "#a78bfa", IsDefault: true},
		{Name: "Other", Emoji: "📌", Color: "#9ca3af", IsDefault: true},
	}
}

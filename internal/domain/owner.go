package domain

import "fmt"

// OwnerKind says whether a resource belongs to a single user or to a household.
type OwnerKind string

const (
	OwnerPersonal  OwnerKind = "personal"
	OwnerHousehold OwnerKind = "household"
)

// Owner is the tagged-union form of the two nullable owner columns
// (user_id / household_id). Exactly one side is ever set.
type Owner struct {
	Kind        OwnerKind `json:"kind"`
	UserID      int64     `json:"user_id,omitempty"`
	HouseholdID int64     `json:"household_id,omitempty"`
}

// PersonalOwner returns an Owner scoped to a single user.
func PersonalOwner(userID int64) Owner {
	return Owner{Kind: OwnerPersonal, UserID: userID}
}

// HouseholdOwner returns an Owner scoped to a household.
func HouseholdOwner(householdID int64) Owner {
	return Owner{Kind: OwnerHousehold, HouseholdID: householdID}
}

// IsHousehold reports whether the owner is a household.
func (o Owner) IsHousehold() bool { return o.Kind == OwnerHousehold }

// Columns splits the owner back into the nullable column pair for SQL binding.
func (o Owner) Columns() (userID, householdID *int64) {
	switch o.Kind {
	case OwnerPersonal:
		return &o.UserID, nil
	case OwnerHousehold:
		return nil, &o.HouseholdID
	}
	return nil, nil
}

// OwnerFromColumns rebuilds the union from the nullable column pair.
// Rows violating the either/or constraint are rejected here so a bad row
// can never masquerade as a valid scope.
func OwnerFromColumns(userID, householdID *int64) (Owner, error) {
	switch {
	case userID != nil && householdID != nil:
		return Owner{}, fmt.Errorf("owner: both user_id and household_id set")
	case userID != nil:
		return PersonalOwner(*userID), nil
	case householdID != nil:
		return HouseholdOwner(*householdID), nil
	}
	return Owner{}, fmt.Errorf("owner: neither user_id nor household_id set")
}

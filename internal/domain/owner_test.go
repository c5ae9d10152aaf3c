package domain

import "testing"

func TestOwnerColumnsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		owner Owner
	}{
		{"personal", PersonalOwner(7)},
		{"household", HouseholdOwner(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, householdID := tt.owner.Columns()
			if (userID == nil) == (householdID == nil) {
				t.Fatalf("Columns() = (%v, %v), exactly one side must be set", userID, householdID)
			}
			got, err := OwnerFromColumns(userID, householdID)
			if err != nil {
				t.Fatalf("OwnerFromColumns() error = %v", err)
			}
			if got != tt.owner {
				t.Errorf("round trip = %+v, want %+v", got, tt.owner)
			}
		})
	}
}

func TestOwnerFromColumnsRejectsBadRows(t *testing.T) {
	id := int64(1)
	if _, err := OwnerFromColumns(&id, &id); err == nil {
		t.Error("both columns set: want error")
	}
	if _, err := OwnerFromColumns(nil, nil); err == nil {
		t.Error("neither column set: want error")
	}
}

func TestOwnerIsHousehold(t *testing.T) {
	if PersonalOwner(1).IsHousehold() {
		t.Error("personal owner reported as household")
	}
	if !HouseholdOwner(1).IsHousehold() {
		t.Error("household owner not reported as household")
	}
}

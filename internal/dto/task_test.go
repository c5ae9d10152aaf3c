package dto

import (
	"encoding/json"
	"testing"
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
)

func TestDueDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{
			name: "date only is UTC midnight",
			in:   `"2026-09-01"`,
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339",
			in:   `"2026-09-01T18:30:00Z"`,
			want: time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			in:   `"2026-09-01T18:30:00+02:00"`,
			want: time.Date(2026, 9, 1, 18, 30, 0, 0, time.FixedZone("", 2*3600)),
		},
		{
			name: "naive datetime",
			in:   `"2026-09-01T18:30:00"`,
			want: time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC),
		},
		{name: "null", in: `null`, wantNil: true},
		{name: "empty string", in: `""`, wantNil: true},
		{name: "garbage", in: `"next tuesday"`, wantErr: true},
		{name: "wrong type", in: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DueDate
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if tt.wantNil {
				if d.Ptr() != nil {
					t.Fatalf("Ptr() = %v, want nil", d.Ptr())
				}
				return
			}
			if d.Ptr() == nil || !d.Ptr().Equal(tt.want) {
				t.Errorf("Ptr() = %v, want %v", d.Ptr(), tt.want)
			}
		})
	}
}

func TestFromTaskSplitsOwner(t *testing.T) {
	personal := FromTask(dom.Task{ID: 1, Owner: dom.PersonalOwner(7)})
	if personal.UserID == nil || *personal.UserID != 7 || personal.HouseholdID != nil {
		t.Errorf("personal = {user %v, household %v}, want user 7 only", personal.UserID, personal.HouseholdID)
	}

	household := FromTask(dom.Task{ID: 2, Owner: dom.HouseholdOwner(5)})
	if household.HouseholdID == nil || *household.HouseholdID != 5 || household.UserID != nil {
		t.Errorf("household = {user %v, household %v}, want household 5 only", household.UserID, household.HouseholdID)
	}
}

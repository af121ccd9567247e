package sla

import (
	"testing"
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// 2025-06-01 is a Sunday.
var (
	sunday   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	saturday = sunday.AddDate(0, 0, -1)
	monday   = sunday.AddDate(0, 0, 1)
)

func TestAddEffectiveHoursNoRestCrossing(t *testing.T) {
	start := monday.Add(9 * time.Hour) // Monday 09:00
	got := AddEffectiveHours(start, 6)
	want := monday.Add(15 * time.Hour)
	if !got.Equal(want) {
		t.Fatalf("AddEffectiveHours = %v, want %v", got, want)
	}
}

func TestAddEffectiveHoursSkipsRestDayHours(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		hours int
		want  time.Time
	}{
		{
			// The first step out of Sunday 23:00 already lands on Monday,
			// so only non-rest hours are consumed.
			name:  "rest day 23:00 with 2 hour budget",
			start: sunday.Add(23 * time.Hour),
			hours: 2,
			want:  monday.Add(1 * time.Hour),
		},
		{
			// Saturday 22:00 + 4 effective hours: one Saturday hour, the
			// whole of Sunday skipped, three Monday hours.
			name:  "window spanning the entire rest day",
			start: saturday.Add(22 * time.Hour),
			hours: 4,
			want:  monday.Add(2 * time.Hour),
		},
		{
			name:  "start inside rest day",
			start: sunday.Add(10 * time.Hour),
			hours: 1,
			want:  monday.Add(0 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddEffectiveHours(tt.start, tt.hours)
			if !got.Equal(tt.want) {
				t.Errorf("AddEffectiveHours(%v, %d) = %v, want %v", tt.start, tt.hours, got, tt.want)
			}
		})
	}
}

func TestDeadlinesResolutionAfterResponse(t *testing.T) {
	starts := []time.Time{
		monday.Add(9 * time.Hour),
		saturday.Add(23 * time.Hour),
		sunday.Add(12 * time.Hour),
	}
	urgencies := []domain.Urgency{domain.UrgencyNormal, domain.UrgencyHigh, domain.UrgencyEmergency}

	for _, start := range starts {
		for _, urgency := range urgencies {
			response, resolution := Deadlines(urgency, start)
			if !resolution.After(response) {
				t.Errorf("urgency %s from %v: resolution %v not after response %v", urgency, start, resolution, response)
			}
		}
	}
}

func TestDeadlinesPolicyTable(t *testing.T) {
	start := monday.Add(8 * time.Hour)

	response, resolution := Deadlines(domain.UrgencyEmergency, start)
	if !response.Equal(AddEffectiveHours(start, 6)) || !resolution.Equal(AddEffectiveHours(start, 24)) {
		t.Errorf("emergency deadlines do not match 6/24 hour budgets")
	}

	response, resolution = Deadlines(domain.UrgencyHigh, start)
	if !response.Equal(AddEffectiveHours(start, 36)) || !resolution.Equal(AddEffectiveHours(start, 72)) {
		t.Errorf("high deadlines do not match 36/72 hour budgets")
	}
}

func TestBudgetForUnknownUrgencyDefaultsToNormal(t *testing.T) {
	got := BudgetFor(domain.Urgency("Whatever"))
	want := BudgetFor(domain.UrgencyNormal)
	if got != want {
		t.Fatalf("BudgetFor(unknown) = %+v, want %+v", got, want)
	}
}

func TestDeadlinesForDays(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	response, resolution := DeadlinesForDays(2, start)
	if !resolution.Equal(AddEffectiveHours(start, 48)) {
		t.Errorf("resolution = %v, want 48 effective hours from start", resolution)
	}
	if !response.Equal(AddEffectiveHours(start, 24)) {
		t.Errorf("response = %v, want 24 effective hours from start", response)
	}
	if !resolution.After(response) {
		t.Errorf("resolution %v not after response %v", resolution, response)
	}
}

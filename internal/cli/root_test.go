package cli

import (
	"path/filepath"
	"testing"
	"time"

	"pillbox/internal/constants"
	"pillbox/internal/models"
	"pillbox/internal/storage"
)

func TestFormatFrequency(t *testing.T) {
	cases := []struct {
		freq models.Frequency
		want string
	}{
		{models.Frequency{Type: models.FrequencyDaily}, "daily"},
		{models.Frequency{Type: models.FrequencyWeekly, Value: 3}, "3 day(s) per week"},
		{models.Frequency{Type: models.FrequencyMonthly, Value: 5}, "first 5 day(s) of the month"},
		{models.Frequency{Type: models.FrequencyAsNeeded}, "as needed"},
		{models.Frequency{Type: "biweekly"}, "unknown"},
	}
	for _, tc := range cases {
		if got := formatFrequency(tc.freq); got != tc.want {
			t.Errorf("formatFrequency(%s) = %q, want %q", tc.freq.Type, got, tc.want)
		}
	}
}

func TestFormatTimes(t *testing.T) {
	if got := formatTimes(nil); got != "-" {
		t.Errorf("empty times = %q", got)
	}

	times := []models.TimeSlot{
		{Time: "08:00", Taken: true},
		{Time: "20:00"},
	}
	if got := formatTimes(times); got != "08:00 (taken), 20:00" {
		t.Errorf("formatTimes = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-01-10")
	if err != nil || d.Format(constants.DateFormat) != "2024-01-10" {
		t.Errorf("parseDate = %v, %v", d, err)
	}

	for _, s := range []string{"", "today"} {
		d, err := parseDate(s)
		if err != nil {
			t.Fatalf("parseDate(%q): %v", s, err)
		}
		if time.Since(d) > time.Minute {
			t.Errorf("parseDate(%q) should be the current time, got %v", s, d)
		}
	}

	if _, err := parseDate("10/01/2024"); err == nil {
		t.Error("expected error for non-canonical date layout")
	}
}

func TestFindPill(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "pillbox.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	pill := models.Pill{
		ID:   "p1",
		Name: "Aspirin",
		Frequency: models.Frequency{
			Type:      models.FrequencyDaily,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := store.AddPill(pill); err != nil {
		t.Fatal(err)
	}

	byID, err := findPill(store, "p1")
	if err != nil || byID.Name != "Aspirin" {
		t.Errorf("find by id: %v, %+v", err, byID)
	}

	byName, err := findPill(store, "aspirin")
	if err != nil || byName.ID != "p1" {
		t.Errorf("find by case-insensitive name: %v, %+v", err, byName)
	}

	if _, err := findPill(store, "ghost"); err == nil {
		t.Error("expected error for unknown pill")
	}
}

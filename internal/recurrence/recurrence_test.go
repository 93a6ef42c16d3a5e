package recurrence

import (
	"testing"
	"time"

	"pillbox/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsActiveOn_Daily(t *testing.T) {
	end := date(2024, time.January, 31)
	f := models.Frequency{
		Type:      models.FrequencyDaily,
		StartDate: date(2024, time.January, 1),
		EndDate:   &end,
	}

	for d := date(2024, time.January, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if !IsActiveOn(f, d) {
			t.Errorf("expected daily rule active on %s", d.Format("2006-01-02"))
		}
	}

	if IsActiveOn(f, date(2023, time.December, 31)) {
		t.Error("expected inactive before start date")
	}
	if IsActiveOn(f, date(2024, time.February, 1)) {
		t.Error("expected inactive after end date")
	}
}

func TestIsActiveOn_WeeklyCycle(t *testing.T) {
	// First 3 days of each 7-day cycle from Jan 1 are active.
	f := models.Frequency{
		Type:      models.FrequencyWeekly,
		Value:     3,
		StartDate: date(2024, time.January, 1),
	}

	cases := []struct {
		day    int
		active bool
	}{
		{1, true}, {2, true}, {3, true},
		{4, false}, {5, false}, {6, false}, {7, false},
		{8, true}, {9, true}, {10, true},
		{11, false},
	}
	for _, tc := range cases {
		got := IsActiveOn(f, date(2024, time.January, tc.day))
		if got != tc.active {
			t.Errorf("2024-01-%02d: expected active=%v, got %v", tc.day, tc.active, got)
		}
	}
}

func TestIsActiveOn_WeeklyIgnoresTimeOfDay(t *testing.T) {
	// A late-evening reference time must not push the date into the next
	// cycle position.
	f := models.Frequency{
		Type:      models.FrequencyWeekly,
		Value:     1,
		StartDate: time.Date(2024, time.January, 1, 23, 59, 0, 0, time.Local),
	}

	if !IsActiveOn(f, time.Date(2024, time.January, 1, 0, 1, 0, 0, time.Local)) {
		t.Error("expected start date active regardless of start time-of-day")
	}
	if !IsActiveOn(f, time.Date(2024, time.January, 8, 23, 30, 0, 0, time.Local)) {
		t.Error("expected day 8 active regardless of reference time-of-day")
	}
	if IsActiveOn(f, time.Date(2024, time.January, 2, 0, 1, 0, 0, time.Local)) {
		t.Error("expected day 2 inactive")
	}
}

func TestIsActiveOn_Monthly(t *testing.T) {
	f := models.Frequency{
		Type:      models.FrequencyMonthly,
		Value:     5,
		StartDate: date(2024, time.January, 1),
	}

	for day := 1; day <= 5; day++ {
		if !IsActiveOn(f, date(2024, time.March, day)) {
			t.Errorf("expected day %d active for monthly value 5", day)
		}
	}
	for day := 6; day <= 28; day++ {
		if IsActiveOn(f, date(2024, time.March, day)) {
			t.Errorf("expected day %d inactive for monthly value 5", day)
		}
	}
}

func TestIsActiveOn_AsNeeded(t *testing.T) {
	f := models.Frequency{
		Type:      models.FrequencyAsNeeded,
		StartDate: date(2024, time.January, 1),
	}

	if !IsActiveOn(f, date(2024, time.June, 15)) {
		t.Error("expected as-needed rule always active within range")
	}
	if IsActiveOn(f, date(2023, time.June, 15)) {
		t.Error("expected as-needed rule inactive before start")
	}
}

func TestIsActiveOn_UnknownTypeInactive(t *testing.T) {
	for _, typ := range []models.FrequencyType{models.FrequencyCustom, "biweekly", ""} {
		f := models.Frequency{
			Type:      typ,
			StartDate: date(2024, time.January, 1),
		}
		if IsActiveOn(f, date(2024, time.January, 2)) {
			t.Errorf("expected %q rule inactive", typ)
		}
	}
}

func TestIsActiveOn_EndDateInclusive(t *testing.T) {
	end := date(2024, time.January, 10)
	f := models.Frequency{
		Type:      models.FrequencyDaily,
		StartDate: date(2024, time.January, 1),
		EndDate:   &end,
	}

	if !IsActiveOn(f, end) {
		t.Error("expected end date itself to be active")
	}
	// End date stored with a time component must still include the whole day.
	f.EndDate = func() *time.Time {
		e := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.Local)
		return &e
	}()
	if !IsActiveOn(f, time.Date(2024, time.January, 10, 22, 0, 0, 0, time.Local)) {
		t.Error("expected end date active when reference time is later in the day")
	}
}

func TestOccursToday(t *testing.T) {
	f := models.Frequency{
		Type:      models.FrequencyDaily,
		StartDate: date(2024, time.January, 1),
	}
	if !OccursToday(f, date(2024, time.January, 2)) {
		t.Error("expected dose to occur today")
	}
}

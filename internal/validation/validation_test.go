package validation

import (
	"strings"
	"testing"
	"time"

	"pillbox/internal/models"
)

func validPill(id, name string) models.Pill {
	return models.Pill{
		ID:     id,
		Name:   name,
		Dosage: "100 mg",
		Frequency: models.Frequency{
			Type:      models.FrequencyDaily,
			Times:     []models.TimeSlot{{ID: id + "-s1", Time: "08:00"}},
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestValidatePill_Valid(t *testing.T) {
	v := New()
	result := v.ValidatePill(validPill("1", "Aspirin (low-dose)"))
	if !result.IsValid() {
		t.Errorf("expected valid pill, got errors: %v", result.Errors)
	}
}

func TestValidatePill_Name(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		valid bool
	}{
		{"Aspirin", true},
		{"Vitamin D3 (2000 IU)", true},
		{"co-trimoxazole_80", true},
		{"", false},
		{"   ", false},
		{"Aspirin™", false},
		{"pill;drop table", false},
		{strings.Repeat("a", 101), false},
	}
	for _, tc := range cases {
		pill := validPill("1", tc.name)
		result := v.ValidatePill(pill)
		if result.IsValid() != tc.valid {
			t.Errorf("name %q: valid = %v, want %v (errors: %v)", tc.name, result.IsValid(), tc.valid, result.Errors)
		}
	}
}

func TestValidatePill_Dosage(t *testing.T) {
	v := New()

	cases := []struct {
		dosage string
		valid  bool
	}{
		{"100 mg", true},
		{"0.5ml", true},
		{"2 tablets", true},
		{"1 tablet", true},
		{"10 UNITS", true},
		{"3 drops", true},
		{"", false},
		{"lots", false},
		{"mg 100", false},
		{"100 furlongs", false},
	}
	for _, tc := range cases {
		pill := validPill("1", "Aspirin")
		pill.Dosage = tc.dosage
		result := v.ValidatePill(pill)
		if result.IsValid() != tc.valid {
			t.Errorf("dosage %q: valid = %v, want %v (errors: %v)", tc.dosage, result.IsValid(), tc.valid, result.Errors)
		}
	}
}

func TestValidatePill_Frequency(t *testing.T) {
	v := New()

	t.Run("weekly value bounds", func(t *testing.T) {
		for _, value := range []int{0, 11, -1} {
			pill := validPill("1", "Aspirin")
			pill.Frequency.Type = models.FrequencyWeekly
			pill.Frequency.Value = value
			if result := v.ValidatePill(pill); result.IsValid() {
				t.Errorf("expected weekly value %d to be rejected", value)
			}
		}
		pill := validPill("1", "Aspirin")
		pill.Frequency.Type = models.FrequencyWeekly
		pill.Frequency.Value = 3
		if result := v.ValidatePill(pill); !result.IsValid() {
			t.Errorf("expected weekly value 3 to pass, got %v", result.Errors)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		pill := validPill("1", "Aspirin")
		end := pill.Frequency.StartDate.AddDate(0, 0, -1)
		pill.Frequency.EndDate = &end
		if result := v.ValidatePill(pill); result.IsValid() {
			t.Error("expected end date before start date to be rejected")
		}
	})

	t.Run("missing start date", func(t *testing.T) {
		pill := validPill("1", "Aspirin")
		pill.Frequency.StartDate = time.Time{}
		if result := v.ValidatePill(pill); result.IsValid() {
			t.Error("expected missing start date to be rejected")
		}
	})

	t.Run("bad dose time", func(t *testing.T) {
		for _, at := range []string{"24:00", "8:00", "12:60", "noon"} {
			pill := validPill("1", "Aspirin")
			pill.Frequency.Times = []models.TimeSlot{{ID: "s1", Time: at}}
			if result := v.ValidatePill(pill); result.IsValid() {
				t.Errorf("expected dose time %q to be rejected", at)
			}
		}
	})

	t.Run("no times required for as-needed", func(t *testing.T) {
		pill := validPill("1", "Aspirin")
		pill.Frequency.Type = models.FrequencyAsNeeded
		pill.Frequency.Times = nil
		if result := v.ValidatePill(pill); !result.IsValid() {
			t.Errorf("expected as-needed with no times to pass, got %v", result.Errors)
		}
	})

	t.Run("daily requires a time", func(t *testing.T) {
		pill := validPill("1", "Aspirin")
		pill.Frequency.Times = nil
		if result := v.ValidatePill(pill); result.IsValid() {
			t.Error("expected daily with no times to be rejected")
		}
	})
}

func TestValidatePills_DuplicateNames(t *testing.T) {
	v := New()

	pills := []models.Pill{
		validPill("1", "Aspirin"),
		validPill("2", "Iron"),
		validPill("3", "Aspirin"),
	}

	result := v.ValidatePills(pills)
	if result.IsValid() {
		t.Fatal("expected duplicate pill names to be flagged")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "duplicate pill name") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate name error, got %v", result.Errors)
	}
}

func TestFormatReport(t *testing.T) {
	v := New()

	clean := v.ValidatePill(validPill("1", "Aspirin"))
	if got := clean.FormatReport(); got != "No problems detected." {
		t.Errorf("clean report = %q", got)
	}

	dirty := v.ValidatePill(models.Pill{})
	if report := dirty.FormatReport(); !strings.Contains(report, "Problems detected:") {
		t.Errorf("expected report header, got %q", report)
	}
}

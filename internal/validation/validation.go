package validation

import (
	"fmt"
	"regexp"
	"strings"

	"pillbox/internal/constants"
	"pillbox/internal/models"
)

var (
	// namePattern allows letters, digits, whitespace and a small set of
	// punctuation that shows up in real medication names.
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_().]+$`)

	// dosagePattern accepts a number followed by a recognized unit,
	// e.g. "100 mg", "2 tablets", "0.5ml".
	dosagePattern = regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(mg|g|ml|l|units?|tablets?|capsules?|drops?|tsp|tbsp|oz|cc)$`)

	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Result collects everything wrong with a pill. An empty Result means the
// pill is safe to store.
type Result struct {
	Errors []string
}

// IsValid returns true if no errors were recorded.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// FormatReport returns a human-readable report of all errors.
func (r *Result) FormatReport() string {
	if r.IsValid() {
		return "No problems detected."
	}

	report := "Problems detected:\n"
	for _, e := range r.Errors {
		report += fmt.Sprintf("- %s\n", e)
	}
	return report
}

func (r *Result) addf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Validator validates pill records before they reach storage.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidatePill checks a single pill record.
func (v *Validator) ValidatePill(pill models.Pill) Result {
	result := Result{}

	v.validateName(&result, pill.Name)
	v.validateDosage(&result, pill.Dosage)
	v.validateFrequency(&result, pill.Frequency)

	return result
}

func (v *Validator) validateName(r *Result, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		r.addf("pill name is required")
		return
	}
	if len(name) > constants.MaxPillNameLen {
		r.addf("pill name exceeds %d characters", constants.MaxPillNameLen)
	}
	if !namePattern.MatchString(name) {
		r.addf("pill name %q contains invalid characters", name)
	}
}

func (v *Validator) validateDosage(r *Result, dosage string) {
	dosage = strings.TrimSpace(dosage)
	if dosage == "" {
		r.addf("dosage is required")
		return
	}
	if !dosagePattern.MatchString(dosage) {
		r.addf("dosage %q must be a number followed by a unit (e.g. \"100 mg\")", dosage)
	}
}

func (v *Validator) validateFrequency(r *Result, freq models.Frequency) {
	switch freq.Type {
	case models.FrequencyDaily, models.FrequencyAsNeeded:
	case models.FrequencyWeekly, models.FrequencyMonthly:
		if freq.Value < constants.FrequencyValueMin || freq.Value > constants.FrequencyValueMax {
			r.addf("frequency value %d must be between %d and %d",
				freq.Value, constants.FrequencyValueMin, constants.FrequencyValueMax)
		}
	case models.FrequencyCustom:
		r.addf("custom frequency rules are not supported yet")
	default:
		r.addf("unknown frequency type %q", freq.Type)
	}

	if freq.StartDate.IsZero() {
		r.addf("start date is required")
	}
	if freq.EndDate != nil && freq.EndDate.Before(freq.StartDate) {
		r.addf("end date %s is before start date %s",
			freq.EndDate.Format(constants.DateFormat), freq.StartDate.Format(constants.DateFormat))
	}

	if freq.Type != models.FrequencyAsNeeded && len(freq.Times) == 0 {
		r.addf("at least one dose time is required")
	}
	for _, slot := range freq.Times {
		if !timePattern.MatchString(slot.Time) {
			r.addf("dose time %q is not a valid HH:MM time", slot.Time)
		}
	}
}

// ValidatePills checks a collection, also flagging duplicate names across
// pills. Empty names are skipped to avoid piling a duplicate error on top of
// the missing-name error.
func (v *Validator) ValidatePills(pills []models.Pill) Result {
	result := Result{}

	nameCount := make(map[string][]string)
	for _, pill := range pills {
		sub := v.ValidatePill(pill)
		result.Errors = append(result.Errors, sub.Errors...)

		name := strings.TrimSpace(pill.Name)
		if name == "" {
			continue
		}
		nameCount[name] = append(nameCount[name], pill.ID)
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.addf("duplicate pill name %q (IDs: %v)", name, ids)
		}
	}

	return result
}

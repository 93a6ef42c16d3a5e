package cli

import (
	"fmt"
	"strings"
	"time"

	"pillbox/internal/constants"
	"pillbox/internal/models"
	"pillbox/internal/notifier"
	"pillbox/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Dispatcher notifier.Dispatcher
	Debug      bool
}

// LoadDispatcher builds the dispatcher from the permission state persisted in
// settings. Must be called after Store.Load.
func (ctx *Context) LoadDispatcher() error {
	if ctx.Dispatcher != nil {
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	ctx.Dispatcher = notifier.NewDesktop(notifier.ParsePermission(settings.NotificationPermission))
	return nil
}

// SavePermission persists the dispatcher's current permission state.
func (ctx *Context) SavePermission() error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.NotificationPermission = string(ctx.Dispatcher.Permission())
	return ctx.Store.SaveSettings(settings)
}

func formatFrequency(freq models.Frequency) string {
	switch freq.Type {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return fmt.Sprintf("%d day(s) per week", freq.Value)
	case models.FrequencyMonthly:
		return fmt.Sprintf("first %d day(s) of the month", freq.Value)
	case models.FrequencyAsNeeded:
		return "as needed"
	default:
		return "unknown"
	}
}

func formatTimes(times []models.TimeSlot) string {
	if len(times) == 0 {
		return "-"
	}
	var parts []string
	for _, slot := range times {
		s := slot.Time
		if slot.Taken {
			s += " (taken)"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func parseDate(s string) (time.Time, error) {
	if s == "" || s == "today" {
		return time.Now(), nil
	}
	return time.Parse(constants.DateFormat, s)
}

// findPill resolves a pill by id first, then by exact name.
func findPill(store storage.Provider, ref string) (models.Pill, error) {
	if pill, err := store.GetPill(ref); err == nil {
		return pill, nil
	}

	pills, err := store.GetAllPills()
	if err != nil {
		return models.Pill{}, err
	}
	for _, pill := range pills {
		if strings.EqualFold(pill.Name, ref) {
			return pill, nil
		}
	}
	return models.Pill{}, fmt.Errorf("no pill with id or name %q", ref)
}

package scheduler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pillbox/internal/constants"
	"pillbox/internal/logger"
	"pillbox/internal/models"
	"pillbox/internal/notifier"
	"pillbox/internal/recurrence"
)

// Reminder pairs a pill with the absolute instant its dose notification
// should fire.
type Reminder struct {
	Pill   models.Pill
	Slot   models.TimeSlot
	FireAt time.Time
}

// DueToday filters the pills whose recurrence rule is active for the given
// date. Order is preserved relative to the input.
func DueToday(pills []models.Pill, today time.Time) []models.Pill {
	var due []models.Pill
	for _, pill := range pills {
		if recurrence.IsActiveOn(pill.Frequency, today) {
			due = append(due, pill)
		}
	}
	return due
}

// UpcomingReminders computes, for every pill active today, the fire instants
// of its not-yet-taken time slots still ahead of now. The result is sorted
// ascending by fire instant; equal instants keep input order.
func UpcomingReminders(pills []models.Pill, now time.Time) []Reminder {
	var upcoming []Reminder
	for _, pill := range pills {
		if !recurrence.OccursToday(pill.Frequency, now) {
			continue
		}
		for _, slot := range pill.Frequency.Times {
			if slot.Taken {
				continue
			}
			fireAt, err := combine(now, slot.Time)
			if err != nil {
				logger.Warn("skipping slot with invalid time", "pill", pill.Name, "time", slot.Time)
				continue
			}
			if !fireAt.After(now) {
				continue
			}
			upcoming = append(upcoming, Reminder{Pill: pill, Slot: slot, FireAt: fireAt})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].FireAt.Before(upcoming[j].FireAt)
	})
	return upcoming
}

// combine builds the instant at timeOfDay (HH:MM) on the same calendar day
// as ref, in ref's location.
func combine(ref time.Time, timeOfDay string) (time.Time, error) {
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, 0, 0, ref.Location()), nil
}

// ParseTimeOfDay parses an HH:MM string into hour and minute components.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// NextFireTime returns the next instant the given time-of-day occurs: today
// if still ahead of now, otherwise exactly one calendar day later. It never
// rolls further than one day.
func NextFireTime(now time.Time, timeOfDay string) (time.Time, error) {
	candidate, err := combine(now, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

// Scheduler arms one-shot reminder timers. The clock is injectable so tests
// can simulate time instead of waiting on real timers. Timers are keyed by
// notification tag, so re-scheduling a pill replaces its pending reminder.
type Scheduler struct {
	mu       sync.Mutex
	now      func() time.Time
	dispatch notifier.Dispatcher
	timers   map[string]*time.Timer
}

// New returns a scheduler dispatching through d on the real clock.
func New(d notifier.Dispatcher) *Scheduler {
	return NewWithClock(d, time.Now)
}

// NewWithClock returns a scheduler using the given clock function.
func NewWithClock(d notifier.Dispatcher, now func() time.Time) *Scheduler {
	return &Scheduler{
		now:      now,
		dispatch: d,
		timers:   map[string]*time.Timer{},
	}
}

// ScheduleReminder arms a one-shot timer that notifies the user to take the
// named pill at timeOfDay, rolling to tomorrow when the time has already
// passed. Reminders are best-effort: when the notifier is unsupported or
// permission is not granted the scheduler logs and does nothing.
func (s *Scheduler) ScheduleReminder(pillName, timeOfDay string) (time.Time, error) {
	if !s.dispatch.IsSupported() || s.dispatch.Permission() != notifier.PermissionGranted {
		logger.Info("reminder not scheduled, notifications unavailable",
			"pill", pillName, "permission", s.dispatch.Permission())
		return time.Time{}, nil
	}

	now := s.now()
	fireAt, err := NextFireTime(now, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	tag := constants.ReminderTagPrefix + pillName
	n := notifier.Notification{
		Title:              fmt.Sprintf("Time for %s", pillName),
		Body:               fmt.Sprintf("It's time to take your %s", pillName),
		Tag:                tag,
		RequireInteraction: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.timers[tag]; ok {
		prev.Stop()
	}
	s.timers[tag] = time.AfterFunc(fireAt.Sub(now), func() {
		if err := s.dispatch.Dispatch(n); err != nil {
			logger.Warn("reminder dispatch failed", "pill", pillName, "error", err)
		}
		s.mu.Lock()
		delete(s.timers, tag)
		s.mu.Unlock()
	})

	logger.Debug("reminder scheduled", "pill", pillName, "fire_at", fireAt)
	return fireAt, nil
}

// Pending returns the number of armed reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop releases all armed timers.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tag, t := range s.timers {
		t.Stop()
		delete(s.timers, tag)
	}
}

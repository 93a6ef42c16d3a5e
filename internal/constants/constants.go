package constants

const (
	// DateFormat is the canonical date layout used across storage and CLI.
	DateFormat = "2006-01-02"
	// TimeFormat is the canonical time-of-day layout (24h).
	TimeFormat = "15:04"

	// MaxPillNameLen is the maximum accepted pill name length.
	MaxPillNameLen = 100
	// FrequencyValueMin and FrequencyValueMax bound the frequency value
	// for rule types that use one (weekly, monthly).
	FrequencyValueMin = 1
	FrequencyValueMax = 10

	// ReminderTagPrefix is the stable notification tag prefix. The platform
	// uses the tag to coalesce repeat reminders for the same pill.
	ReminderTagPrefix = "pill-reminder-"
)

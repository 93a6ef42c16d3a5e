package storage

import (
	"errors"
	"time"

	"pillbox/internal/models"
)

// ErrNotFound is returned when a pill or slot id does not exist. Operations
// that return it leave the store unchanged.
var ErrNotFound = errors.New("not found")

type Settings struct {
	NotificationPermission string `json:"notification_permission"`
	Timezone               string `json:"timezone,omitempty"`
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Pills
	AddPill(models.Pill) error
	GetPill(id string) (models.Pill, error)
	GetAllPills() ([]models.Pill, error)
	UpdatePill(models.Pill) error
	DeletePill(id string) error
	MarkTaken(pillID, slotID string, at time.Time) error

	// Utils
	GetStorePath() string
}

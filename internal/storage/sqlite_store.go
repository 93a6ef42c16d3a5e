package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"pillbox/internal/models"
	"pillbox/internal/notifier"
)

const schema = `
CREATE TABLE IF NOT EXISTS pills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	dosage TEXT NOT NULL,
	frequency_type TEXT NOT NULL,
	frequency_value INTEGER,
	times TEXT,
	start_date TEXT NOT NULL,
	end_date TEXT,
	instructions TEXT,
	color TEXT,
	shape TEXT,
	side_effects TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := Settings{
			NotificationPermission: string(notifier.PermissionDefault),
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'pillbox init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "notification_permission":
			settings.NotificationPermission = value
		case "timezone":
			settings.Timezone = value
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("notification_permission", settings.NotificationPermission); err != nil {
		return err
	}
	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddPill(pill models.Pill) error {
	return s.writePill(pill)
}

func (s *SQLiteStore) GetPill(id string) (models.Pill, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, dosage, frequency_type, frequency_value, times,
		       start_date, end_date, instructions, color, shape, side_effects,
		       created_at, updated_at
		FROM pills WHERE id = ?`, id)

	pill, err := scanPill(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Pill{}, fmt.Errorf("pill %s: %w", id, ErrNotFound)
		}
		return models.Pill{}, err
	}
	return pill, nil
}

func (s *SQLiteStore) GetAllPills() ([]models.Pill, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, dosage, frequency_type, frequency_value, times,
		       start_date, end_date, instructions, color, shape, side_effects,
		       created_at, updated_at
		FROM pills ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pills []models.Pill
	for rows.Next() {
		pill, err := scanPill(rows)
		if err != nil {
			return nil, err
		}
		pills = append(pills, pill)
	}

	return pills, rows.Err()
}

func (s *SQLiteStore) UpdatePill(pill models.Pill) error {
	if _, err := s.GetPill(pill.ID); err != nil {
		return err
	}

	pill.UpdatedAt = time.Now().UTC()
	return s.writePill(pill)
}

func (s *SQLiteStore) DeletePill(id string) error {
	res, err := s.db.Exec("DELETE FROM pills WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pill %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) MarkTaken(pillID, slotID string, at time.Time) error {
	pill, err := s.GetPill(pillID)
	if err != nil {
		return err
	}

	slot := pill.FindSlot(slotID)
	if slot == nil {
		return fmt.Errorf("slot %s on pill %s: %w", slotID, pillID, ErrNotFound)
	}

	slot.Taken = true
	takenAt := at.UTC()
	slot.TakenAt = &takenAt
	pill.UpdatedAt = time.Now().UTC()

	return s.writePill(pill)
}

func (s *SQLiteStore) writePill(pill models.Pill) error {
	timesJSON, err := json.Marshal(pill.Frequency.Times)
	if err != nil {
		return fmt.Errorf("failed to marshal time slots: %w", err)
	}
	effectsJSON, err := json.Marshal(pill.SideEffects)
	if err != nil {
		return fmt.Errorf("failed to marshal side effects: %w", err)
	}

	var endDate sql.NullString
	if pill.Frequency.EndDate != nil {
		endDate = sql.NullString{String: pill.Frequency.EndDate.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO pills (
			id, name, description, dosage, frequency_type, frequency_value, times,
			start_date, end_date, instructions, color, shape, side_effects,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pill.ID, pill.Name, pill.Description, pill.Dosage,
		string(pill.Frequency.Type), pill.Frequency.Value, string(timesJSON),
		pill.Frequency.StartDate.Format(time.RFC3339), endDate,
		pill.Instructions, pill.Color, string(pill.Shape), string(effectsJSON),
		pill.CreatedAt.Format(time.RFC3339), pill.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPill(row rowScanner) (models.Pill, error) {
	var pill models.Pill
	var freqType, shape string
	var timesJSON, effectsJSON string
	var startDate, createdAt, updatedAt string
	var endDate sql.NullString

	err := row.Scan(
		&pill.ID, &pill.Name, &pill.Description, &pill.Dosage,
		&freqType, &pill.Frequency.Value, &timesJSON,
		&startDate, &endDate, &pill.Instructions, &pill.Color, &shape, &effectsJSON,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.Pill{}, err
	}

	pill.Frequency.Type = models.FrequencyType(freqType)
	pill.Shape = models.PillShape(shape)

	if timesJSON != "" {
		if err := json.Unmarshal([]byte(timesJSON), &pill.Frequency.Times); err != nil {
			return models.Pill{}, fmt.Errorf("failed to parse time slots: %w", err)
		}
	}
	if effectsJSON != "" {
		if err := json.Unmarshal([]byte(effectsJSON), &pill.SideEffects); err != nil {
			return models.Pill{}, fmt.Errorf("failed to parse side effects: %w", err)
		}
	}

	if pill.Frequency.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return models.Pill{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	if endDate.Valid {
		end, err := time.Parse(time.RFC3339, endDate.String)
		if err != nil {
			return models.Pill{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		pill.Frequency.EndDate = &end
	}
	if pill.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Pill{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if pill.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Pill{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return pill, nil
}

func (s *SQLiteStore) GetStorePath() string {
	return s.path
}

// GetDB exposes the underlying handle for diagnostics and backups.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"pillbox/internal/constants"
	"pillbox/internal/models"
	"pillbox/internal/scheduler"
	"pillbox/internal/storage"
	"pillbox/internal/tui/components/pilllist"
	"pillbox/internal/tui/components/today"
	"pillbox/internal/validation"
)

type SessionState int

const (
	StateToday SessionState = iota
	StatePills
	StateAdding
	StateConfirmDelete
)

// tabCount covers only the cyclable tabs, not modal states.
const tabCount = 2

type PillFormModel struct {
	Name      string
	Dosage    string
	Frequency models.FrequencyType
	Value     string
	Times     string
	Start     string
}

type Model struct {
	store             storage.Provider
	scheduler         *scheduler.Scheduler
	state             SessionState
	keys              KeyMap
	help              help.Model
	pillList          pilllist.Model
	todayModel        today.Model
	form              *huh.Form
	pillForm          *PillFormModel
	pillToDeleteID    string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) Model {
	pills, err := store.GetAllPills()
	if err != nil {
		pills = []models.Pill{}
	}

	tm := today.New()
	tm.SetPills(pills, time.Now())

	m := Model{
		store:      store,
		scheduler:  sched,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		pillList:   pilllist.New(pills, 0, 0),
		todayModel: tm,
	}

	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Take)
	case StatePills:
		keys = append(keys, m.keys.Add, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Take}
	case StatePills:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the store state into both tabs.
func (m *Model) refresh() {
	pills, err := m.store.GetAllPills()
	if err != nil {
		return
	}
	m.pillList.SetPills(pills)
	m.todayModel.SetPills(pills, time.Now())
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	pills, err := m.store.GetAllPills()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	if result := validation.New().ValidatePills(pills); !result.IsValid() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Errors))
	} else {
		m.validationWarning = ""
	}
}

func newPillForm(fm *PillFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("pill name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Dosage").
				Description("Number with unit, e.g. '100 mg'").
				Value(&fm.Dosage),
			huh.NewSelect[models.FrequencyType]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Monthly", models.FrequencyMonthly),
					huh.NewOption("As needed", models.FrequencyAsNeeded),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Frequency value").
				Description("Active days per cycle (weekly/monthly only)").
				Value(&fm.Value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 10 {
						return fmt.Errorf("value must be 1-10")
					}
					return nil
				}),
			huh.NewInput().
				Title("Dose times").
				Description("Comma-separated HH:MM, e.g. '08:00, 20:00'").
				Value(&fm.Times),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Value(&fm.Start).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("invalid date, use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

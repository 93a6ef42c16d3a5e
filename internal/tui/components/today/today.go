package today

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pillbox/internal/models"
	"pillbox/internal/scheduler"
)

// TakeDoseMsg asks the main model to mark one dose as taken.
type TakeDoseMsg struct {
	PillID string
	SlotID string
}

// row is one selectable dose line on the Today tab.
type row struct {
	pill models.Pill
	slot models.TimeSlot
}

type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Take key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Take: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "mark taken"),
		),
	}
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	takenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

type Model struct {
	rows   []row
	cursor int
	keys   KeyMap
	date   time.Time
}

func New() Model {
	return Model{keys: DefaultKeyMap(), date: time.Now()}
}

// SetPills rebuilds the dose rows from the pills active on the given date.
func (m *Model) SetPills(pills []models.Pill, now time.Time) {
	m.date = now
	m.rows = nil
	for _, pill := range scheduler.DueToday(pills, now) {
		if len(pill.Frequency.Times) == 0 {
			m.rows = append(m.rows, row{pill: pill})
			continue
		}
		for _, slot := range pill.Frequency.Times {
			m.rows = append(m.rows, row{pill: pill, slot: slot})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Take):
			if m.cursor < len(m.rows) {
				r := m.rows[m.cursor]
				if r.slot.ID != "" && !r.slot.Taken {
					return m, func() tea.Msg {
						return TakeDoseMsg{PillID: r.pill.ID, SlotID: r.slot.ID}
					}
				}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Due on %s", m.date.Format("Mon Jan 2"))))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("  Nothing due today.\n")
		return b.String()
	}

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%s - %s", r.pill.Name, r.pill.Dosage)
		if r.slot.ID != "" {
			line = fmt.Sprintf("%s  %s", r.slot.Time, line)
		}
		if r.slot.Taken {
			line = takenStyle.Render(line + "  ✓ taken")
		}

		b.WriteString(cursor + line + "\n")
	}

	return b.String()
}

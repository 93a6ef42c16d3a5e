package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"pillbox/internal/constants"
	"pillbox/internal/models"
	"pillbox/internal/tui/components/pilllist"
	"pillbox/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StateAdding {
		return m.updateAdding(msg)
	}

	if m.state == StateConfirmDelete {
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.pillList.SetSize(msg.Width-h, msg.Height-v-4)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.scheduler != nil {
				m.scheduler.Stop()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case pilllist.AddPillMsg:
		m.pillForm = &PillFormModel{
			Frequency: models.FrequencyDaily,
			Start:     time.Now().Format(constants.DateFormat),
		}
		m.form = newPillForm(m.pillForm)
		m.state = StateAdding
		return m, m.form.Init()

	case pilllist.DeletePillMsg:
		m.pillToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case today.TakeDoseMsg:
		if err := m.store.MarkTaken(msg.PillID, msg.SlotID, time.Now()); err == nil {
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StatePills:
		m.pillList, cmd = m.pillList.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StatePills
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		pill := m.buildPillFromForm()
		if err := m.store.AddPill(pill); err == nil {
			m.refresh()
		}
		m.state = StatePills
	case huh.StateAborted:
		m.state = StatePills
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) buildPillFromForm() models.Pill {
	fm := m.pillForm

	value := 1
	if v, err := strconv.Atoi(strings.TrimSpace(fm.Value)); err == nil {
		value = v
	}

	start := time.Now()
	if s, err := time.Parse(constants.DateFormat, strings.TrimSpace(fm.Start)); err == nil {
		start = s
	}

	var slots []models.TimeSlot
	for _, at := range strings.Split(fm.Times, ",") {
		at = strings.TrimSpace(at)
		if at == "" {
			continue
		}
		slots = append(slots, models.TimeSlot{ID: uuid.New().String(), Time: at})
	}

	now := time.Now().UTC()
	return models.Pill{
		ID:     uuid.New().String(),
		Name:   strings.TrimSpace(fm.Name),
		Dosage: strings.TrimSpace(fm.Dosage),
		Frequency: models.Frequency{
			Type:      fm.Frequency,
			Value:     value,
			Times:     slots,
			StartDate: start,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.store.DeletePill(m.pillToDeleteID); err == nil {
				m.refresh()
			}
			m.pillToDeleteID = ""
			m.state = StatePills
		case "n", "N", "esc", "q":
			m.pillToDeleteID = ""
			m.state = StatePills
		}
	}
	return m, nil
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pillbox/internal/constants"
	"pillbox/internal/models"
	"pillbox/internal/validation"
)

type AddCmd struct {
	Name         string   `arg:"" help:"Pill name."`
	Dosage       string   `short:"d" help:"Dosage with unit, e.g. '100 mg'." required:""`
	Frequency    string   `short:"f" help:"Frequency type (daily|weekly|monthly|as-needed)." default:"daily"`
	Value        int      `short:"v" help:"Frequency value (active days per week / days of month)." default:"1"`
	Times        []string `short:"t" help:"Dose times (HH:MM). Repeatable."`
	Start        string   `short:"s" help:"Start date (YYYY-MM-DD or 'today')."`
	End          string   `short:"e" help:"End date (YYYY-MM-DD), inclusive."`
	Description  string   `help:"Free-form description."`
	Instructions string   `help:"Intake instructions, e.g. 'take with food'."`
	Color        string   `help:"Display color, e.g. '#ff8800'."`
	Shape        string   `help:"Pill shape (round|oval|capsule|square|triangle|diamond)."`
	SideEffects  []string `help:"Known side effects. Repeatable."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	freqType := models.FrequencyType(strings.ToLower(c.Frequency))
	switch freqType {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyAsNeeded:
	default:
		return fmt.Errorf("invalid frequency type: %s", c.Frequency)
	}

	start, err := parseDate(c.Start)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	var end *time.Time
	if c.End != "" {
		e, err := time.Parse(constants.DateFormat, c.End)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		end = &e
	}

	var slots []models.TimeSlot
	for _, at := range c.Times {
		slots = append(slots, models.TimeSlot{
			ID:   uuid.New().String(),
			Time: at,
		})
	}

	now := time.Now().UTC()
	pill := models.Pill{
		ID:     uuid.New().String(),
		Name:   c.Name,
		Dosage: c.Dosage,
		Frequency: models.Frequency{
			Type:      freqType,
			Value:     c.Value,
			Times:     slots,
			StartDate: start,
			EndDate:   end,
		},
		Description:  c.Description,
		Instructions: c.Instructions,
		Color:        c.Color,
		Shape:        models.PillShape(c.Shape),
		SideEffects:  c.SideEffects,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if result := validation.New().ValidatePill(pill); !result.IsValid() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.AddPill(pill); err != nil {
		return err
	}

	fmt.Printf("Added pill: %s (ID: %s)\n", c.Name, pill.ID)
	return nil
}

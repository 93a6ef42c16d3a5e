package models

import "time"

type FrequencyType string

const (
	FrequencyDaily    FrequencyType = "daily"
	FrequencyWeekly   FrequencyType = "weekly"
	FrequencyMonthly  FrequencyType = "monthly"
	FrequencyAsNeeded FrequencyType = "as-needed"
	FrequencyCustom   FrequencyType = "custom"
)

type PillShape string

const (
	ShapeRound    PillShape = "round"
	ShapeOval     PillShape = "oval"
	ShapeCapsule  PillShape = "capsule"
	ShapeSquare   PillShape = "square"
	ShapeTriangle PillShape = "triangle"
	ShapeDiamond  PillShape = "diamond"
)

// TimeSlot is one scheduled dose time within a day. Taken state belongs to
// the slot and is only mutated through the store's MarkTaken operation.
type TimeSlot struct {
	ID      string     `json:"id"`
	Time    string     `json:"time"` // HH:MM format
	Taken   bool       `json:"taken"`
	TakenAt *time.Time `json:"taken_at,omitempty"`
}

// Frequency is the recurrence rule deciding on which calendar dates a pill
// dose is scheduled. The meaning of Value depends on Type: for weekly it is
// the number of active days at the start of each 7-day cycle from StartDate,
// for monthly it is the day-of-month cutoff. It is meaningless for as-needed.
type Frequency struct {
	Type      FrequencyType `json:"type"`
	Value     int           `json:"value,omitempty"`
	Times     []TimeSlot    `json:"times"`
	StartDate time.Time     `json:"start_date"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
}

type Pill struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Dosage       string    `json:"dosage"` // free text with embedded unit, e.g. "10 mg"
	Frequency    Frequency `json:"frequency"`
	Instructions string    `json:"instructions,omitempty"`
	Color        string    `json:"color,omitempty"`
	Shape        PillShape `json:"shape,omitempty"`
	SideEffects  []string  `json:"side_effects,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FindSlot returns the time slot with the given id, or nil.
func (p *Pill) FindSlot(slotID string) *TimeSlot {
	for i := range p.Frequency.Times {
		if p.Frequency.Times[i].ID == slotID {
			return &p.Frequency.Times[i]
		}
	}
	return nil
}

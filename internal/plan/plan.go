// Package plan implements the 30-day regimen: the plan model, the Gemini
// generator adapter, the persistent store, progress arithmetic and the
// fallback recipe selector.
package plan

import (
	"time"

	"capillaire-ai/internal/diagnosis"
)

// Length is the fixed plan horizon in days.
const Length = 30

// Category classifies a day's activity within the capillary schedule.
type Category string

const (
	CategoryHydration      Category = "Hidratação"
	CategoryNutrition      Category = "Nutrição"
	CategoryReconstruction Category = "Reconstrução"
	CategoryDetox          Category = "Detox"
)

// DayTask is one day's prescribed activity. Recipe is optional: an empty
// value means the fallback selector supplies the text at presentation time.
type DayTask struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Recipe      string   `json:"recipe,omitempty"`
	Completed   bool     `json:"completed"`
}

// Plan is the aggregate root: the 30-day schedule derived from one
// diagnosis. After creation the only mutation path is toggling one task's
// Completed flag through the Store.
type Plan struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Diagnosis diagnosis.Diagnosis `json:"diagnosis"`
	Summary   string              `json:"summary"`
	Tasks     []DayTask           `json:"tasks"`
}

// Clone returns a deep copy so callers never alias the canonical plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tasks = make([]DayTask, len(p.Tasks))
	copy(cp.Tasks, p.Tasks)
	return &cp
}

// Task returns the task scheduled for the given day.
func (p *Plan) Task(day int) (DayTask, bool) {
	if p == nil {
		return DayTask{}, false
	}
	for _, t := range p.Tasks {
		if t.Day == day {
			return t, true
		}
	}
	return DayTask{}, false
}

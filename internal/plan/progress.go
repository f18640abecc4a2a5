package plan

import (
	"math"
	"time"
)

// Progress holds the metrics derived from a plan's current state. All
// derivation is pure; the reference time is always supplied by the caller.
type Progress struct {
	CurrentDay     int
	CompletedCount int
	Percent        int
	TodayTask      *DayTask
	Upcoming       []DayTask
}

// CurrentDay models calendar-day progression since plan creation, capped at
// the 30-day horizon and floored at day 1. A nil plan reports day 1 for
// display purposes only.
func CurrentDay(p *Plan, now time.Time) int {
	if p == nil {
		return 1
	}
	elapsed := int(now.Sub(p.CreatedAt).Hours() / 24)
	day := elapsed + 1
	if day < 1 {
		return 1
	}
	if day > Length {
		return Length
	}
	return day
}

// Summarize derives the full progress view for the plan at the given time.
func Summarize(p *Plan, now time.Time) Progress {
	prog := Progress{CurrentDay: CurrentDay(p, now)}
	if p == nil {
		return prog
	}

	for _, t := range p.Tasks {
		if t.Completed {
			prog.CompletedCount++
		}
	}
	// The denominator is the fixed plan length: a task completed out of
	// order still counts.
	prog.Percent = int(math.Round(float64(prog.CompletedCount) / Length * 100))

	if t, ok := p.Task(prog.CurrentDay); ok {
		prog.TodayTask = &t
	}

	for _, t := range p.Tasks {
		if t.Day > prog.CurrentDay && t.Day <= prog.CurrentDay+4 {
			prog.Upcoming = append(prog.Upcoming, t)
		}
	}

	return prog
}

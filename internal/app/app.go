// Package app wires the regimen components together and owns the
// generation flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"capillaire-ai/internal/advisor"
	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/metrics"
	"capillaire-ai/internal/notify"
	"capillaire-ai/internal/plan"
	"capillaire-ai/internal/ritual"
)

// ErrGenerationInFlight rejects a new generation request while one is
// still pending, instead of firing overlapping model calls.
var ErrGenerationInFlight = errors.New("plan generation already in progress")

// App holds the application's dependencies.
type App struct {
	generator    *plan.Generator
	planStore    *plan.Store
	advisor      *advisor.Advisor
	assistant    *advisor.Assistant
	rituals      *ritual.Checklist
	notifySvc    *notify.Service
	metricsStore *metrics.Store // optional

	mu         sync.Mutex
	generating bool
}

// NewApp creates and initializes a new App instance.
func NewApp(
	generator *plan.Generator,
	planStore *plan.Store,
	adv *advisor.Advisor,
	assistant *advisor.Assistant,
	rituals *ritual.Checklist,
	notifySvc *notify.Service,
	metricsStore *metrics.Store,
) *App {
	return &App{
		generator:    generator,
		planStore:    planStore,
		advisor:      adv,
		assistant:    assistant,
		rituals:      rituals,
		notifySvc:    notifySvc,
		metricsStore: metricsStore,
	}
}

// GeneratePlan runs the full generation flow: guard, generate, commit.
// On failure the previously committed plan is left untouched.
func (a *App) GeneratePlan(ctx context.Context, d diagnosis.Diagnosis) (*plan.Plan, error) {
	a.mu.Lock()
	if a.generating {
		a.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	a.generating = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.generating = false
		a.mu.Unlock()
	}()

	start := time.Now()
	p, usage, err := a.generator.Generate(ctx, d)
	if a.metricsStore != nil {
		if recErr := a.metricsStore.RecordUsage("plan-generator", usage, time.Since(start)); recErr != nil {
			log.Printf("Warning: failed to record generation metrics: %v", recErr)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := a.planStore.Commit(p); err != nil {
		return nil, fmt.Errorf("failed to commit generated plan: %w", err)
	}
	return p, nil
}

// CurrentPlan returns a copy of the active plan, or nil.
func (a *App) CurrentPlan() *plan.Plan {
	return a.planStore.Current()
}

// Progress derives the progress view for the active plan at the given time.
func (a *App) Progress(now time.Time) plan.Progress {
	return plan.Summarize(a.planStore.Current(), now)
}

// ToggleTask flips one day's completion state.
func (a *App) ToggleTask(day int) (*plan.Plan, error) {
	return a.planStore.ToggleTask(day)
}

// Reset discards the plan and the notification preference, restoring the
// app to its pre-diagnosis state.
func (a *App) Reset() error {
	if err := a.planStore.Clear(); err != nil {
		return err
	}
	return a.notifySvc.SetEnabled(false)
}

// Tip requests quick advice for a problem, contextualized with the active
// plan's diagnosis when one exists. It never fails.
func (a *App) Tip(ctx context.Context, problem string) string {
	var d *diagnosis.Diagnosis
	if p := a.planStore.Current(); p != nil {
		d = &p.Diagnosis
	}
	return a.advisor.Tip(ctx, problem, d)
}

// Chat forwards a message to the assistant session.
func (a *App) Chat(ctx context.Context, text string) string {
	return a.assistant.Send(ctx, text)
}

// Rituals returns the daily ritual checklist.
func (a *App) Rituals() ([]ritual.Item, error) {
	return a.rituals.Items()
}

// ToggleRitual flips one checklist item.
func (a *App) ToggleRitual(id string) ([]ritual.Item, error) {
	return a.rituals.Toggle(id)
}

// NotificationsEnabled reports the reminder preference.
func (a *App) NotificationsEnabled() bool {
	return a.notifySvc.Enabled()
}

// SetNotifications persists the reminder preference.
func (a *App) SetNotifications(enabled bool) error {
	return a.notifySvc.SetEnabled(enabled)
}

// StartReminders arranges the daily reminder schedule.
func (a *App) StartReminders(cronSpec string) error {
	return a.notifySvc.StartScheduler(cronSpec)
}

// StopReminders halts the reminder schedule.
func (a *App) StopReminders() {
	a.notifySvc.Stop()
}

// Package notify manages the daily reminder preference and schedule.
package notify

import (
	"errors"
	"fmt"
	"log"
	"time"

	"capillaire-ai/internal/plan"
	"capillaire-ai/internal/storage"

	"github.com/robfig/cron/v3"
)

const (
	notifsKey        = "capillaire_notifs"
	confirmationText = "Lembretes diários ativados com sucesso! ✨"
)

// ErrUnsupported is returned when reminders are enabled on a channel that
// cannot deliver them.
var ErrUnsupported = errors.New("notifications are not supported on this channel")

// Sender delivers a reminder to the user. A nil Sender models a channel
// without notification support.
type Sender interface {
	SendReminder(text string) error
}

// Service persists the notification preference and drives the daily
// reminder schedule.
type Service struct {
	kv        storage.Store
	sender    Sender
	planStore *plan.Store
	cron      *cron.Cron
}

// NewService creates a new Service instance.
func NewService(kv storage.Store, sender Sender, planStore *plan.Store) *Service {
	return &Service{kv: kv, sender: sender, planStore: planStore}
}

// Enabled reports the stored preference. Absent or malformed values mean
// disabled.
func (s *Service) Enabled() bool {
	v, err := s.kv.Get(notifsKey)
	if err != nil {
		return false
	}
	return v == "true"
}

// SetEnabled persists the preference. Enabling sends a one-shot
// confirmation so the user knows reminders are live.
func (s *Service) SetEnabled(enabled bool) error {
	if enabled && s.sender == nil {
		return ErrUnsupported
	}

	value := "false"
	if enabled {
		value = "true"
	}
	if err := s.kv.Set(notifsKey, value); err != nil {
		return fmt.Errorf("failed to persist notification preference: %w", err)
	}

	if enabled {
		if err := s.sender.SendReminder(confirmationText); err != nil {
			log.Printf("Warning: failed to send confirmation notification: %v", err)
		}
	}
	return nil
}

// StartScheduler arranges the daily reminder at the given cron expression.
func (s *Service) StartScheduler(cronSpec string) error {
	if s.sender == nil {
		return ErrUnsupported
	}

	c := cron.New()
	if _, err := c.AddFunc(cronSpec, s.sendDailyReminder); err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}
	c.Start()
	s.cron = c

	log.Printf("Daily reminder scheduled at %q", cronSpec)
	return nil
}

// Stop halts the reminder schedule.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// sendDailyReminder pushes today's task when reminders are enabled and a
// plan is active.
func (s *Service) sendDailyReminder() {
	if !s.Enabled() {
		return
	}

	p := s.planStore.Current()
	if p == nil {
		return
	}

	day := plan.CurrentDay(p, time.Now())
	task, ok := p.Task(day)
	if !ok {
		return
	}

	text := fmt.Sprintf("🌿 Lembrete Capillaire — Dia %d: %s (%s)", task.Day, task.Title, task.Category)
	if task.Completed {
		text = fmt.Sprintf("✨ Dia %d já concluído! Continue assim.", task.Day)
	}
	if err := s.sender.SendReminder(text); err != nil {
		log.Printf("Warning: failed to send daily reminder: %v", err)
	}
}

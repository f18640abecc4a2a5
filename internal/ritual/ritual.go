// Package ritual implements the small daily habit checklist that lives
// beside the plan. It is seeded with a fixed default set on first use and
// never expires.
package ritual

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"capillaire-ai/internal/storage"
)

const ritualsKey = "capillaire_rituals"

// ErrUnknownRitual is returned when a toggle targets an id that is not in
// the checklist.
var ErrUnknownRitual = errors.New("unknown ritual id")

// Item is one checklist entry.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func defaultItems() []Item {
	return []Item{
		{ID: "1", Text: "Massagem capilar (4 min)"},
		{ID: "2", Text: "Beber 2L de água"},
		{ID: "3", Text: "Suplementação vitamínica"},
		{ID: "4", Text: "Tônico de crescimento"},
	}
}

// Checklist persists the ritual items in the KV store.
type Checklist struct {
	mu sync.Mutex
	kv storage.Store
}

// NewChecklist creates a Checklist over the given store.
func NewChecklist(kv storage.Store) *Checklist {
	return &Checklist{kv: kv}
}

// Items returns the current checklist, seeding the defaults when nothing
// (or something corrupt) is stored.
func (c *Checklist) Items() ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadOrSeed()
}

// Toggle flips one item's Completed flag, persists the checklist and
// returns the updated items.
func (c *Checklist) Toggle(id string) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.loadOrSeed()
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Completed = !items[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRitual, id)
	}

	if err := c.persist(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Checklist) loadOrSeed() ([]Item, error) {
	raw, err := c.kv.Get(ritualsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to read rituals: %w", err)
		}
		return c.seed()
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Warning: discarding corrupt ritual checklist: %v", err)
		return c.seed()
	}
	return items, nil
}

func (c *Checklist) seed() ([]Item, error) {
	items := defaultItems()
	if err := c.persist(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Checklist) persist(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal rituals: %w", err)
	}
	if err := c.kv.Set(ritualsKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist rituals: %w", err)
	}
	return nil
}

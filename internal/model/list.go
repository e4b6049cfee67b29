// Package model holds the todo list and item types and their mutation rules.
package model

import (
	"fmt"
	"strings"
	"time"
)

// List is a named, ordered collection of items. One List maps to one file.
type List struct {
	Name         string    `json:"name" yaml:"name" toml:"name"`
	Items        []Item    `json:"items" yaml:"items" toml:"items"`
	NextID       int       `json:"next_id" yaml:"next_id" toml:"next_id"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified" toml:"last_modified"`
}

// NewList returns an empty list. The name is trimmed and must not be blank.
func NewList(name string) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	t := now()
	return &List{
		Name:         name,
		Items:        []Item{},
		NextID:       1,
		CreatedAt:    t,
		LastModified: t,
	}, nil
}

// NewItem builds an item carrying the list's next id. The id is consumed even
// if the item is never added, so ids stay unique.
func (l *List) NewItem(title, description string, state State, priority Priority, due *Date) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}
	if !state.Valid() {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	if !priority.Valid() {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	l.Reconcile()
	it := Item{
		ID:        l.NextID,
		Title:     title,
		State:     StateToDo,
		Priority:  priority,
		CreatedAt: now(),
	}
	l.NextID++
	if d := strings.TrimSpace(description); d != "" {
		it.Description = &d
	}
	it.SetDueDate(due)
	it.SetState(state)
	return it, nil
}

// AddItem appends it and bumps LastModified.
func (l *List) AddItem(it Item) {
	l.Items = append(l.Items, it)
	if it.ID >= l.NextID {
		l.NextID = it.ID + 1
	}
	l.Touch()
}

// InsertItem puts it back at position i (clamped), e.g. to undo a removal.
func (l *List) InsertItem(i int, it Item) {
	if i < 0 {
		i = 0
	}
	if i > len(l.Items) {
		i = len(l.Items)
	}
	l.Items = append(l.Items, Item{})
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = it
	if it.ID >= l.NextID {
		l.NextID = it.ID + 1
	}
	l.Touch()
}

// RemoveItem deletes the item with the given id. The list is left untouched
// when no such item exists.
func (l *List) RemoveItem(id int) error {
	for i := range l.Items {
		if l.Items[i].ID == id {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			l.Touch()
			return nil
		}
	}
	return fmt.Errorf("item %d: %w", id, ErrItemNotFound)
}

// FindItem returns a pointer into Items, or nil.
func (l *List) FindItem(id int) *Item {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// UpdateItem applies fn to the item with the given id and bumps LastModified.
func (l *List) UpdateItem(id int, fn func(*Item)) error {
	it := l.FindItem(id)
	if it == nil {
		return fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	fn(it)
	l.Touch()
	return nil
}

func (l *List) Touch() { l.LastModified = now() }

// Stats counts done and pending items.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.Items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// Reconcile repairs values a hand-edited or older file may lack: a nil Items
// slice and a NextID that is not above every id in use. Done is derived from
// State, and CompletedAt is dropped on items that are not Done.
func (l *List) Reconcile() {
	if l.Items == nil {
		l.Items = []Item{}
	}
	maxID := 0
	for i := range l.Items {
		it := &l.Items[i]
		if it.ID > maxID {
			maxID = it.ID
		}
		it.Done = it.State == StateDone
		if !it.Done {
			it.CompletedAt = nil
		}
	}
	if l.NextID <= maxID {
		l.NextID = maxID + 1
	}
}

package model

import "time"

// now is swapped out in tests. Timestamps are kept at second precision in UTC
// so they survive an RFC3339 round trip unchanged.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// Item is a single task inside a List.
// Done mirrors State == StateDone; every setter keeps the two in sync.
type Item struct {
	ID          int        `json:"id" yaml:"id" toml:"id"`
	Title       string     `json:"title" yaml:"title" toml:"title"`
	Description *string    `json:"description" yaml:"description" toml:"description,omitempty"`
	State       State      `json:"status" yaml:"status" toml:"status"`
	Done        bool       `json:"done" yaml:"done" toml:"done"`
	Priority    Priority   `json:"priority" yaml:"priority" toml:"priority"`
	DueDate     *Date      `json:"due_date" yaml:"due_date" toml:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at" toml:"created_at"`
	CompletedAt *time.Time `json:"completed_at" yaml:"completed_at" toml:"completed_at,omitempty"`
}

// Desc returns the description or "" when unset.
func (it *Item) Desc() string {
	if it.Description == nil {
		return ""
	}
	return *it.Description
}

// SetState moves the item to s. Entering Done stamps CompletedAt; leaving it clears it.
// Setting Done on an item that is already Done keeps the original CompletedAt.
func (it *Item) SetState(s State) {
	if s == StateDone {
		if it.State != StateDone || it.CompletedAt == nil {
			t := now()
			it.CompletedAt = &t
		}
		it.Done = true
	} else {
		it.CompletedAt = nil
		it.Done = false
	}
	it.State = s
}

func (it *Item) SetPriority(p Priority) { it.Priority = p }

// SetDueDate sets the due date; nil removes it.
func (it *Item) SetDueDate(d *Date) {
	if d == nil {
		it.DueDate = nil
		return
	}
	v := *d
	it.DueDate = &v
}

// ToggleDone flips Done. Un-marking puts the item back to StateToDo.
func (it *Item) ToggleDone() {
	if it.Done {
		it.SetState(StateToDo)
		return
	}
	it.SetState(StateDone)
}

// Overdue reports whether the item is open and its due date is before today.
func (it *Item) Overdue(today Date) bool {
	return !it.Done && it.DueDate != nil && it.DueDate.Before(today)
}

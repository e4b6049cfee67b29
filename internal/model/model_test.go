package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestNewList_RejectsBlankName(t *testing.T) {
	_, err := NewList("   ")
	require.ErrorIs(t, err, ErrEmptyName)

	l, err := NewList("  Groceries ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", l.Name)
	assert.NotNil(t, l.Items)
	assert.Equal(t, 1, l.NextID)
}

func TestNewItem_IDsIncreaseAndAreNeverReused(t *testing.T) {
	l, err := NewList("work")
	require.NoError(t, err)

	var ids []int
	for _, title := range []string{"a", "b", "c"} {
		it, err := l.NewItem(title, "", StateToDo, PriorityLow, nil)
		require.NoError(t, err)
		l.AddItem(it)
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)

	require.NoError(t, l.RemoveItem(3))
	it, err := l.NewItem("d", "", StateToDo, PriorityLow, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, it.ID)
}

func TestNewItem_Validation(t *testing.T) {
	l, _ := NewList("work")

	_, err := l.NewItem("  ", "", StateToDo, PriorityLow, nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = l.NewItem("x", "", State("nope"), PriorityLow, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = l.NewItem("x", "", StateToDo, Priority("urgent"), nil)
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewItem_Fields(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	fixedClock(t, at)
	l, _ := NewList("work")
	due := Date{Year: 2026, Month: time.March, Day: 10}

	it, err := l.NewItem("Report", "  quarterly ", StatePending, PriorityHigh, &due)
	require.NoError(t, err)
	assert.Equal(t, "Report", it.Title)
	assert.Equal(t, "quarterly", it.Desc())
	assert.Equal(t, StatePending, it.State)
	assert.False(t, it.Done)
	assert.Nil(t, it.CompletedAt)
	assert.Equal(t, at, it.CreatedAt)
	require.NotNil(t, it.DueDate)
	assert.Equal(t, due, *it.DueDate)

	done, err := l.NewItem("Shipped", "", StateDone, PriorityLow, nil)
	require.NoError(t, err)
	assert.True(t, done.Done)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, at, *done.CompletedAt)
	assert.Nil(t, done.Description)
}

func TestSetState_KeepsDoneInSync(t *testing.T) {
	l, _ := NewList("work")
	it, _ := l.NewItem("x", "", StateToDo, PriorityLow, nil)

	for _, s := range States {
		it.SetState(s)
		assert.Equal(t, s == StateDone, it.Done, s)
		assert.Equal(t, s == StateDone, it.CompletedAt != nil, s)
	}
}

func TestSetState_DoneTwiceKeepsCompletionTime(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fixedClock(t, first)
	l, _ := NewList("work")
	it, _ := l.NewItem("x", "", StateToDo, PriorityLow, nil)
	it.SetState(StateDone)

	now = func() time.Time { return first.Add(time.Hour) }
	it.SetState(StateDone)
	require.NotNil(t, it.CompletedAt)
	assert.Equal(t, first, *it.CompletedAt)
}

func TestToggleDone(t *testing.T) {
	l, _ := NewList("work")
	it, _ := l.NewItem("x", "", StateInProgress, PriorityLow, nil)

	it.ToggleDone()
	assert.True(t, it.Done)
	assert.Equal(t, StateDone, it.State)
	assert.NotNil(t, it.CompletedAt)

	it.ToggleDone()
	assert.False(t, it.Done)
	assert.Equal(t, StateToDo, it.State)
	assert.Nil(t, it.CompletedAt)
}

func TestSetDueDate(t *testing.T) {
	var it Item
	d := Date{Year: 2026, Month: time.May, Day: 4}
	it.SetDueDate(&d)
	d.Day = 5
	require.NotNil(t, it.DueDate)
	assert.Equal(t, 4, it.DueDate.Day, "setter must copy the date")

	it.SetDueDate(nil)
	assert.Nil(t, it.DueDate)
}

func TestRemoveItem_NotFoundLeavesListUnchanged(t *testing.T) {
	fixedClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	l, _ := NewList("work")
	it, _ := l.NewItem("x", "", StateToDo, PriorityLow, nil)
	l.AddItem(it)
	before := *l
	before.Items = append([]Item(nil), l.Items...)

	now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
	err := l.RemoveItem(42)
	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, before, *l)
}

func TestUpdateItem(t *testing.T) {
	l, _ := NewList("work")
	it, _ := l.NewItem("x", "", StateToDo, PriorityLow, nil)
	l.AddItem(it)

	require.NoError(t, l.UpdateItem(1, func(it *Item) { it.SetPriority(PriorityCritical) }))
	assert.Equal(t, PriorityCritical, l.FindItem(1).Priority)
	assert.ErrorIs(t, l.UpdateItem(9, func(*Item) {}), ErrItemNotFound)
	assert.Nil(t, l.FindItem(9))
}

func TestReconcile(t *testing.T) {
	l := &List{Items: []Item{{ID: 3}, {ID: 7}}, NextID: 2}
	l.Reconcile()
	assert.Equal(t, 8, l.NextID)

	empty := &List{}
	empty.Reconcile()
	assert.Equal(t, 1, empty.NextID)
	assert.NotNil(t, empty.Items)
}

func TestReconcile_DoneFollowsState(t *testing.T) {
	stamp := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	l := &List{Items: []Item{
		{ID: 1, State: StateDone},
		{ID: 2, State: StateToDo, Done: true, CompletedAt: &stamp},
		{ID: 3, State: StateDone, CompletedAt: &stamp},
	}}
	l.Reconcile()

	assert.True(t, l.Items[0].Done)
	assert.False(t, l.Items[1].Done)
	assert.Nil(t, l.Items[1].CompletedAt)
	assert.True(t, l.Items[2].Done)
	assert.Equal(t, &stamp, l.Items[2].CompletedAt)

	done, pending := l.Stats()
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, pending)

	l.Items[0].ToggleDone()
	assert.Equal(t, StateToDo, l.Items[0].State)
	assert.False(t, l.Items[0].Done)
}

func TestStats(t *testing.T) {
	l, _ := NewList("work")
	for _, s := range []State{StateDone, StateToDo, StateDone} {
		it, _ := l.NewItem("x", "", s, PriorityLow, nil)
		l.AddItem(it)
	}
	done, pending := l.Stats()
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, pending)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 28}, d)
	assert.Equal(t, "2026-02-28", d.String())

	for _, bad := range []string{"", "2026-02-30", "28/02/2026", "2026-2-3"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDate_JSON(t *testing.T) {
	type wrap struct {
		D *Date `json:"d"`
	}
	b, err := json.Marshal(wrap{D: &Date{Year: 2026, Month: time.July, Day: 4}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2026-07-04"}`, string(b))

	b, err = json.Marshal(wrap{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(b))

	var w wrap
	assert.Error(t, json.Unmarshal([]byte(`{"d":"tomorrow"}`), &w))
}

func TestOverdue(t *testing.T) {
	today := Date{Year: 2026, Month: time.June, Day: 10}
	yesterday := Date{Year: 2026, Month: time.June, Day: 9}
	it := Item{DueDate: &yesterday}
	assert.True(t, it.Overdue(today))
	it.Done = true
	assert.False(t, it.Overdue(today))
	it = Item{DueDate: &today}
	assert.False(t, it.Overdue(today))
}

func TestParseEnums(t *testing.T) {
	s, err := ParseState("in progress")
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, s)
	s, err = ParseState("Terminee")
	require.NoError(t, err)
	assert.Equal(t, StateDone, s)
	_, err = ParseState("later")
	assert.ErrorIs(t, err, ErrInvalidState)

	p, err := ParsePriority("critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)
	_, err = ParsePriority("meh")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	assert.Equal(t, StateToDo, StateDone.Next())
	assert.Equal(t, PriorityLow, PriorityCritical.Next())
}

func TestInsertItem(t *testing.T) {
	l, _ := NewList("work")
	for _, title := range []string{"a", "b", "c"} {
		it, _ := l.NewItem(title, "", StateToDo, PriorityLow, nil)
		l.AddItem(it)
	}
	removed := *l.FindItem(2)
	require.NoError(t, l.RemoveItem(2))

	l.InsertItem(1, removed)
	var titles []string
	for _, it := range l.Items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"a", "b", "c"}, titles)
	assert.Equal(t, 4, l.NextID)

	l.InsertItem(99, Item{ID: 10, Title: "z"})
	assert.Equal(t, "z", l.Items[len(l.Items)-1].Title)
	assert.Equal(t, 11, l.NextID)
}

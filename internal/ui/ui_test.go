package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "██████████ 100%", ProgressBar(3, 3, 10))
}

func TestItemLine(t *testing.T) {
	today := model.Date{Year: 2026, Month: time.June, Day: 10}
	due := model.Date{Year: 2026, Month: time.June, Day: 1}
	desc := "semi-skimmed"
	it := model.Item{ID: 7, Title: "Milk", Description: &desc, State: model.StateInProgress,
		Priority: model.PriorityHigh, DueDate: &due}

	line := ItemLine(it, today)
	assert.Contains(t, line, "#7")
	assert.Contains(t, line, "Milk")
	assert.Contains(t, line, "[In progress]")
	assert.Contains(t, line, "High")
	assert.Contains(t, line, "due 2026-06-01 (overdue)")

	long := model.Item{ID: 1, Title: strings.Repeat("é", 80), State: model.StateToDo, Priority: model.PriorityLow}
	assert.Contains(t, ItemLine(long, today), strings.Repeat("é", maxTitle-3)+"...")
}

func TestListPanel(t *testing.T) {
	l, err := model.NewList("Groceries")
	require.NoError(t, err)
	today := model.DateOf(time.Now())

	out := ListPanel(l, today)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "no items")

	it, err := l.NewItem("Milk", "2 litres", model.StateDone, model.PriorityMedium, nil)
	require.NoError(t, err)
	l.AddItem(it)
	out = ListPanel(l, today)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "2 litres")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, "no items")
}

func TestOKAndFail(t *testing.T) {
	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "boom")
	assert.Contains(t, buf.String(), "✔ saved")
	assert.Contains(t, buf.String(), "✖ boom")
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)
	SetTheme("neon")
	assert.Equal(t, "◼", Current().BoxChecked)
	SetTheme("")
	assert.Equal(t, "☑", Current().BoxChecked)
}

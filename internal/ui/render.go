package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

const maxTitle = 60

// PriorityStyle colors a priority by urgency.
func PriorityStyle(p model.Priority) lipgloss.Style {
	t := Current()
	switch p {
	case model.PriorityCritical:
		return t.Error
	case model.PriorityHigh:
		return t.Pending
	case model.PriorityMedium:
		return t.Accent
	}
	return t.Muted
}

// Header is the one-line summary shown above a list: name and counts.
func Header(l *model.List) string {
	t := Current()
	d, p := l.Stats()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(l.Name),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(l.Items),
	)
}

// ItemLine renders one item: id, checkbox, title, state, priority and due date.
func ItemLine(it model.Item, today model.Date) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	title := it.Title
	if r := []rune(title); len(r) > maxTitle {
		title = string(r[:maxTitle-3]) + "..."
	}
	if it.Done {
		box = t.Success.Render(t.BoxChecked)
		title = t.DoneText.Render(title)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s  %s  %s",
		t.Muted.Render(fmt.Sprintf("#%-3d", it.ID)), box, title,
		t.Muted.Render("["+it.State.Label()+"]"),
		PriorityStyle(it.Priority).Render(string(it.Priority)))
	if it.DueDate != nil {
		due := "due " + it.DueDate.String()
		if it.Overdue(today) {
			due = t.Error.Render(due + " (overdue)")
		} else {
			due = t.Muted.Render(due)
		}
		b.WriteString("  " + due)
	}
	return b.String()
}

// ListLines renders a list as the lines of a panel, descriptions indented
// under their item.
func ListLines(l *model.List, today model.Date) []string {
	t := Current()
	d, _ := l.Stats()
	lines := []string{
		Header(l),
		t.Muted.Render(ProgressBar(d, len(l.Items), 28)),
		"",
	}
	if len(l.Items) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	}
	for _, it := range l.Items {
		lines = append(lines, ItemLine(it, today))
		if desc := it.Desc(); desc != "" {
			lines = append(lines, "      "+t.Muted.Render(desc))
		}
	}
	lines = append(lines, "", t.Muted.Render("last modified "+l.LastModified.Local().Format("2006-01-02 15:04")))
	return lines
}

// ListPanel is ListLines framed.
func ListPanel(l *model.List, today model.Date) string {
	return Panel(ListLines(l, today))
}

// Package tui is the full-screen browser for a single list.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item  model.Item
	today model.Date
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return i.item.Desc() }
func (i listItem) FilterValue() string { return i.item.Title + " " + i.item.Desc() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.ItemLine(it.item, it.today))
}

var (
	toggleBind   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	stateBind    = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "state"))
	priorityBind = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority"))
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	deleteBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind     = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
)

type browser struct {
	list     list.Model
	data     *model.List
	changed  bool
	today    model.Date
	priority model.Priority // for items added here

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	// Undo support (single-level, this session only)
	undoItem  *model.Item
	undoIndex int
}

func newBrowser(l *model.List, priority model.Priority) browser {
	if !priority.Valid() {
		priority = model.PriorityMedium
	}
	b := browser{data: l, today: model.DateOf(time.Now()), priority: priority}

	b.list = list.New(b.listItems(), itemDelegate{}, 80, 20)
	b.list.Title = ui.Header(l)
	b.list.SetShowHelp(true)
	b.list.SetShowStatusBar(true)
	b.list.SetFilteringEnabled(true)
	b.list.Styles.Title = lipgloss.NewStyle()
	b.list.Styles.HelpStyle = ui.Current().Muted
	b.list.FilterInput.Prompt = "/ "
	b.list.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{toggleBind, stateBind, priorityBind, addBind, deleteBind, undoBind}
	}
	b.list.AdditionalShortHelpKeys = extra
	b.list.AdditionalFullHelpKeys = extra

	b.ti = textinput.New()
	b.ti.Prompt = "> "
	b.ti.Placeholder = "New item title..."
	b.ti.CharLimit = 200
	return b
}

// Browse runs the browser on l, loaded from file, and saves it back there
// through store if anything changed. It reports whether a save happened.
func Browse(l *model.List, store *jsonstore.Store, file string, priority model.Priority) (bool, error) {
	p := tea.NewProgram(newBrowser(l, priority), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(browser)
	if !ok || !fm.changed {
		return false, nil
	}
	if err := store.SaveTo(file, fm.data); err != nil {
		return false, err
	}
	return true, nil
}

func (b browser) listItems() []list.Item {
	out := make([]list.Item, 0, len(b.data.Items))
	for _, it := range b.data.Items {
		out = append(out, listItem{item: it, today: b.today})
	}
	return out
}

// refresh re-syncs the view with the list after a mutation.
func (b *browser) refresh() tea.Cmd {
	b.changed = true
	b.list.Title = ui.Header(b.data)
	cmd := b.list.SetItems(b.listItems())
	if n := len(b.list.VisibleItems()); b.list.Index() >= n && n > 0 {
		b.list.Select(n - 1)
	}
	return cmd
}

func (b browser) selected() (model.Item, bool) {
	li, ok := b.list.SelectedItem().(listItem)
	return li.item, ok
}

// Update and View implement Bubble Tea's Model on browser
func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.list.SetSize(ws.Width-4, ws.Height-6)
		return b, nil
	}

	// add mode
	if b.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				it, err := b.data.NewItem(b.ti.Value(), "", model.StateToDo, b.priority, nil)
				if err != nil {
					b.addErr = err.Error()
					return b, nil
				}
				b.data.AddItem(it)
				b.stopAdding()
				cmd := b.refresh()
				return b, cmd
			case "esc":
				b.stopAdding()
				return b, nil
			}
		}
		b.ti, cmd = b.ti.Update(msg)
		return b, cmd
	}

	// keys typed into the filter belong to the filter
	if b.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		b.list, cmd = b.list.Update(msg)
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q":
			return b, tea.Quit
		case "esc":
			if b.list.FilterState() == list.Unfiltered {
				return b, tea.Quit
			}
		case " ":
			cmd := b.mutate((*model.Item).ToggleDone)
			return b, cmd
		case "s":
			cmd := b.mutate(func(it *model.Item) { it.SetState(it.State.Next()) })
			return b, cmd
		case "p":
			cmd := b.mutate(func(it *model.Item) { it.SetPriority(it.Priority.Next()) })
			return b, cmd
		case "d":
			it, ok := b.selected()
			if !ok {
				return b, nil
			}
			for i := range b.data.Items {
				if b.data.Items[i].ID == it.ID {
					tmp := it
					b.undoItem, b.undoIndex = &tmp, i
					break
				}
			}
			if err := b.data.RemoveItem(it.ID); err != nil {
				return b, nil
			}
			cmd := b.refresh()
			return b, cmd
		case "u":
			if b.undoItem == nil {
				return b, nil
			}
			b.data.InsertItem(b.undoIndex, *b.undoItem)
			b.undoItem = nil
			cmd := b.refresh()
			return b, cmd
		case "a":
			b.adding = true
			b.addErr = ""
			b.ti.SetValue("")
			cmd := b.ti.Focus()
			return b, cmd
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *browser) mutate(fn func(*model.Item)) tea.Cmd {
	it, ok := b.selected()
	if !ok {
		return nil
	}
	if err := b.data.UpdateItem(it.ID, fn); err != nil {
		return nil
	}
	return b.refresh()
}

func (b *browser) stopAdding() {
	b.adding = false
	b.addErr = ""
	b.ti.SetValue("")
	b.ti.Blur()
}

func (b browser) View() string {
	content := b.list.View()
	if b.adding {
		title := "Add new item"
		if b.addErr != "" {
			title += " " + ui.Current().Error.Render(b.addErr)
		}
		content += "\n" + ui.Panel([]string{title, b.ti.View()})
	}
	if b.undoItem != nil {
		content += "\n" + ui.Current().Muted.Render(
			fmt.Sprintf("removed %q, press u to undo", strings.TrimSpace(b.undoItem.Title)))
	}
	return ui.Panel([]string{content})
}

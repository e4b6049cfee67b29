package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// errAborted sends a flow back to the main menu after the problem has
// already been reported.
var errAborted = errors.New("aborted")

var (
	mainActions = []string{
		"Create a new list",
		"Update an existing list",
		"Delete an existing list",
		"Quit",
	}
	listActions = []string{
		"Add an item",
		"Change an item's state",
		"Toggle done",
		"Remove an item",
		"Change an item's priority",
		"Change an item's due date",
		"Display the list",
		"Back",
	}
)

// Menu is the numbered, line-driven interactive session. It holds at most
// one list at a time and saves after every change.
type Menu struct {
	in       *bufio.Reader
	out      io.Writer
	store    *jsonstore.Store
	log      *log.Logger
	priority model.Priority
	today    func() model.Date

	file string // file of the list being edited
}

// NewMenu wires a session to its input, output and store.
func NewMenu(in io.Reader, out io.Writer, store *jsonstore.Store, logger *log.Logger, defaultPriority model.Priority) *Menu {
	if !defaultPriority.Valid() {
		defaultPriority = model.PriorityMedium
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		store:    store,
		log:      logger,
		priority: defaultPriority,
		today:    func() model.Date { return model.DateOf(time.Now()) },
	}
}

// Run loops on the main menu until the user quits or input ends.
func (m *Menu) Run() error {
	fmt.Fprintln(m.out, ui.Current().Title.Render("Hello! Pick what you want to do:"))
	for {
		choice, err := m.choose("Main menu", mainActions, 0)
		if err != nil {
			return endOfInput(err)
		}
		switch choice {
		case 1:
			err = m.create()
		case 2:
			err = m.update()
		case 3:
			err = m.remove()
		case 4:
			fmt.Fprintln(m.out, "Bye!")
			return nil
		}
		if err != nil && !errors.Is(err, errAborted) {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ---------------------------------------------------
// Flows
// ---------------------------------------------------

func (m *Menu) create() error {
	var l *model.List
	for l == nil {
		name, err := m.readLine("List name:")
		if err != nil {
			return err
		}
		candidate, err := model.NewList(name)
		if err != nil {
			ui.Fail(m.out, err.Error())
			continue
		}
		if err := m.store.Create(candidate); err != nil {
			if errors.Is(err, jsonstore.ErrListExists) {
				ui.Fail(m.out, "a list with that name already exists")
				continue
			}
			ui.Fail(m.out, "save: "+err.Error())
			return errAborted
		}
		l = candidate
	}
	m.file = jsonstore.FileName(l.Name)
	ui.OK(m.out, "created "+jsonstore.FileName(l.Name))
	m.log.Info("list created", "name", l.Name)

	for {
		more, err := m.confirm("Add an item? (oui/non)")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := m.addItem(l); err != nil {
			return err
		}
	}
}

func (m *Menu) update() error {
	file, err := m.selectList("Which list do you want to update?")
	if err != nil || file == "" {
		return err
	}
	l, err := m.store.Load(file)
	if err != nil {
		ui.Fail(m.out, "load: "+err.Error())
		return errAborted
	}
	m.file = file
	for {
		choice, err := m.choose(fmt.Sprintf("List %q", l.Name), listActions, 0)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = m.addItem(l)
		case 2:
			err = m.changeState(l)
		case 3:
			err = m.toggleDone(l)
		case 4:
			err = m.removeItem(l)
		case 5:
			err = m.changePriority(l)
		case 6:
			err = m.changeDueDate(l)
		case 7:
			fmt.Fprintln(m.out, ui.ListPanel(l, m.today()))
		case 8:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) remove() error {
	file, err := m.selectList("Which list do you want to delete?")
	if err != nil || file == "" {
		return err
	}
	yes, err := m.confirm(fmt.Sprintf("Really delete %s? (oui/non)", file))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(m.out, ui.Current().Muted.Render("deletion cancelled"))
		return nil
	}
	if err := m.store.Delete(file); err != nil {
		ui.Fail(m.out, "delete: "+err.Error())
		return errAborted
	}
	ui.OK(m.out, "deleted "+file)
	m.log.Info("list deleted", "file", file)
	return nil
}

// ---------------------------------------------------
// List actions
// ---------------------------------------------------

func (m *Menu) addItem(l *model.List) error {
	title, err := m.readRequired("Title:")
	if err != nil {
		return err
	}
	desc, err := m.readLine("Description (optional):")
	if err != nil {
		return err
	}
	state, err := m.chooseState(model.StateToDo)
	if err != nil {
		return err
	}
	prio, err := m.choosePriority(m.priority)
	if err != nil {
		return err
	}
	due, err := m.readDate("Due date YYYY-MM-DD (optional):")
	if err != nil {
		return err
	}
	it, err := l.NewItem(title, desc, state, prio, due)
	if err != nil {
		ui.Fail(m.out, err.Error())
		return nil
	}
	l.AddItem(it)
	if err := m.save(l); err != nil {
		return err
	}
	ui.OK(m.out, fmt.Sprintf("added #%d %s", it.ID, it.Title))
	return nil
}

func (m *Menu) changeState(l *model.List) error {
	it, err := m.pickItem(l)
	if err != nil || it == nil {
		return err
	}
	state, err := m.chooseState(it.State)
	if err != nil {
		return err
	}
	return m.apply(l, it.ID, func(it *model.Item) { it.SetState(state) })
}

func (m *Menu) toggleDone(l *model.List) error {
	it, err := m.pickItem(l)
	if err != nil || it == nil {
		return err
	}
	return m.apply(l, it.ID, (*model.Item).ToggleDone)
}

func (m *Menu) removeItem(l *model.List) error {
	if len(l.Items) == 0 {
		fmt.Fprintln(m.out, ui.Current().Muted.Render("the list is empty"))
		return nil
	}
	m.printItems(l)
	id, err := m.readInt("Item id:")
	if err != nil {
		return err
	}
	if err := l.RemoveItem(id); err != nil {
		ui.Fail(m.out, err.Error())
		return nil
	}
	if err := m.save(l); err != nil {
		return err
	}
	ui.OK(m.out, fmt.Sprintf("removed #%d", id))
	return nil
}

func (m *Menu) changePriority(l *model.List) error {
	it, err := m.pickItem(l)
	if err != nil || it == nil {
		return err
	}
	prio, err := m.choosePriority(it.Priority)
	if err != nil {
		return err
	}
	return m.apply(l, it.ID, func(it *model.Item) { it.SetPriority(prio) })
}

func (m *Menu) changeDueDate(l *model.List) error {
	it, err := m.pickItem(l)
	if err != nil || it == nil {
		return err
	}
	due, err := m.readDate("New due date YYYY-MM-DD (empty clears it):")
	if err != nil {
		return err
	}
	return m.apply(l, it.ID, func(it *model.Item) { it.SetDueDate(due) })
}

// apply mutates one item, saves, and echoes the item's new line.
func (m *Menu) apply(l *model.List, id int, fn func(*model.Item)) error {
	if err := l.UpdateItem(id, fn); err != nil {
		ui.Fail(m.out, err.Error())
		return nil
	}
	if err := m.save(l); err != nil {
		return err
	}
	ui.OK(m.out, "updated")
	fmt.Fprintln(m.out, ui.ItemLine(*l.FindItem(id), m.today()))
	return nil
}

func (m *Menu) save(l *model.List) error {
	if err := m.store.SaveTo(m.file, l); err != nil {
		ui.Fail(m.out, "save: "+err.Error())
		return errAborted
	}
	return nil
}

// ---------------------------------------------------
// Prompts
// ---------------------------------------------------

func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt+" ")
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		fmt.Fprintln(m.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) readRequired(prompt string) (string, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil || s != "" {
			return s, err
		}
		ui.Fail(m.out, "a value is required")
	}
}

func (m *Menu) readInt(prompt string) (int, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		ui.Fail(m.out, "not a number: "+s)
	}
}

// readDate returns nil for an empty answer and re-prompts on malformed input.
func (m *Menu) readDate(prompt string) (*model.Date, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		d, err := model.ParseDate(s)
		if err == nil {
			return &d, nil
		}
		ui.Fail(m.out, err.Error())
	}
}

// confirm accepts oui/o/yes/y; anything else is a no.
func (m *Menu) confirm(prompt string) (bool, error) {
	s, err := m.readLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "oui", "o", "yes", "y":
		return true, nil
	}
	return false, nil
}

// choose prints a numbered menu and returns the 1-based pick. A non-zero def
// is returned for an empty answer.
func (m *Menu) choose(title string, options []string, def int) (int, error) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, ui.Current().Accent.Render(title))
	for i, o := range options {
		marker := " "
		if i+1 == def {
			marker = "*"
		}
		fmt.Fprintf(m.out, "%s%d - %s\n", marker, i+1, o)
	}
	for {
		s, err := m.readLine("Choice:")
		if err != nil {
			return 0, err
		}
		if s == "" && def > 0 {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			return n, nil
		}
		ui.Fail(m.out, "invalid choice: "+s)
	}
}

func (m *Menu) chooseState(def model.State) (model.State, error) {
	labels := make([]string, len(model.States))
	d := 0
	for i, s := range model.States {
		labels[i] = s.Label()
		if s == def {
			d = i + 1
		}
	}
	n, err := m.choose("State", labels, d)
	if err != nil {
		return "", err
	}
	return model.States[n-1], nil
}

func (m *Menu) choosePriority(def model.Priority) (model.Priority, error) {
	labels := make([]string, len(model.Priorities))
	d := 0
	for i, p := range model.Priorities {
		labels[i] = string(p)
		if p == def {
			d = i + 1
		}
	}
	n, err := m.choose("Priority", labels, d)
	if err != nil {
		return "", err
	}
	return model.Priorities[n-1], nil
}

// selectList returns "" when there is nothing to pick or the user backs out.
func (m *Menu) selectList(title string) (string, error) {
	files, err := m.store.ListAvailable()
	if err != nil {
		ui.Fail(m.out, "list: "+err.Error())
		return "", errAborted
	}
	if len(files) == 0 {
		fmt.Fprintln(m.out, ui.Current().Muted.Render("no lists yet"))
		return "", nil
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, ui.Current().Accent.Render(title))
	for i, f := range files {
		fmt.Fprintf(m.out, " %d - %s\n", i+1, f)
	}
	fmt.Fprintln(m.out, " 0 - Back")
	for {
		n, err := m.readInt("Choice:")
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", nil
		}
		if n >= 1 && n <= len(files) {
			return files[n-1], nil
		}
		ui.Fail(m.out, fmt.Sprintf("invalid choice: %d", n))
	}
}

// pickItem asks for an item id. It returns nil after reporting an empty list
// or an unknown id.
func (m *Menu) pickItem(l *model.List) (*model.Item, error) {
	if len(l.Items) == 0 {
		fmt.Fprintln(m.out, ui.Current().Muted.Render("the list is empty"))
		return nil, nil
	}
	m.printItems(l)
	id, err := m.readInt("Item id:")
	if err != nil {
		return nil, err
	}
	it := l.FindItem(id)
	if it == nil {
		ui.Fail(m.out, fmt.Sprintf("item %d: %s", id, model.ErrItemNotFound))
	}
	return it, nil
}

func (m *Menu) printItems(l *model.List) {
	today := m.today()
	for _, it := range l.Items {
		fmt.Fprintln(m.out, "  "+ui.ItemLine(it, today))
	}
}

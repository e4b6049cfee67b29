// Package cli is the command-line surface: the subcommand router and the
// interactive menu.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/Makepad-fr/tada/internal/export"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carries what the entry point has already set up.
type Options struct {
	Store           *jsonstore.Store
	Log             *log.Logger
	DefaultPriority model.Priority

	In       io.Reader
	Out, Err io.Writer
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Log == nil {
		o.Log = log.New(io.Discard)
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive menu.
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		return doMenu(opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "menu":
		return doMenu(opt)

	case "ls":
		return doList(opt)

	case "show":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tada show <list>")
			return 2
		}
		return doShow(opt, a[0])

	case "browse":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tada browse <list>")
			return 2
		}
		return doBrowse(opt, a[0])

	case "export":
		if len(a) < 1 || len(a) > 2 {
			ui.Fail(opt.Err, "usage: tada export <list> [json|yaml|toml]")
			return 2
		}
		format := "json"
		if len(a) == 2 {
			format = a[1]
		}
		return doExport(opt, a[0], format)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - todo lists in your working directory

Usage:
  tada [flags] [subcommand] [args]

Subcommands:
  (none), menu                 Interactive menu: create, update, delete lists
  ls                           Show every list with its progress
  show <list>                  Print one list
  browse <list>                Full-screen list browser (needs a terminal)
  export <list> [format]       Print a list as json (default), yaml or toml

<list> is a list name ("Groceries") or a file name ("Groceries.json").

Examples:
  tada
  tada ls
  tada show "Weekend chores"
  tada export Groceries yaml
`)
}

// -------------- subcommand impls ----------------

func doMenu(opt Options) int {
	m := NewMenu(opt.In, opt.Out, opt.Store, opt.Log, opt.DefaultPriority)
	if err := m.Run(); err != nil {
		ui.Fail(opt.Err, err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	entries, err := opt.Store.Lists()
	if err != nil {
		ui.Fail(opt.Err, "ls: "+err.Error())
		return 1
	}
	t := ui.Current()
	lines := []string{t.Title.Render("Lists") + "  " + t.Muted.Render(opt.Store.Dir()), ""}
	if len(entries) == 0 {
		lines = append(lines, t.Muted.Render("no lists yet"))
	}
	for _, e := range entries {
		d, _ := e.List.Stats()
		lines = append(lines, fmt.Sprintf("%s  %s",
			ui.Header(e.List),
			t.Muted.Render(ui.ProgressBar(d, len(e.List.Items), 20))))
	}
	lines = append(lines, "", t.Muted.Render("Tip: run `tada` to create or edit a list"))
	fmt.Fprintln(opt.Out, ui.Panel(lines))
	return 0
}

func doShow(opt Options, ref string) int {
	l, code := load(opt, ref)
	if l == nil {
		return code
	}
	fmt.Fprintln(opt.Out, ui.ListPanel(l, model.DateOf(time.Now())))
	return 0
}

func doBrowse(opt Options, ref string) int {
	f, ok := opt.In.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		ui.Fail(opt.Err, "browse: stdin is not a terminal, use `tada show` instead")
		return 1
	}
	l, code := load(opt, ref)
	if l == nil {
		return code
	}
	saved, err := tui.Browse(l, opt.Store, jsonstore.Resolve(ref), opt.DefaultPriority)
	if err != nil {
		ui.Fail(opt.Err, "browse: "+err.Error())
		return 1
	}
	if saved {
		ui.OK(opt.Out, "saved")
	}
	return 0
}

func doExport(opt Options, ref, format string) int {
	l, code := load(opt, ref)
	if l == nil {
		return code
	}
	if err := export.Write(opt.Out, l, format); err != nil {
		ui.Fail(opt.Err, err.Error())
		if errors.Is(err, export.ErrUnknownFormat) {
			return 2
		}
		return 1
	}
	return 0
}

func load(opt Options, ref string) (*model.List, int) {
	l, err := opt.Store.Load(ref)
	if err != nil {
		ui.Fail(opt.Err, "load: "+err.Error())
		if errors.Is(err, jsonstore.ErrListNotFound) {
			fmt.Fprintln(opt.Err, ui.Current().Muted.Render("Hint: run `tada ls` to see available lists"))
		}
		return nil, 1
	}
	return l, 0
}

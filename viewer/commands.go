package viewer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Command names accepted by Dispatch.
const (
	CmdOpen     = "open"
	CmdNext     = "next"
	CmdPrevious = "previous"
	CmdFirst    = "first"
	CmdLast     = "last"
	CmdCopyPath = "copy-path"
	CmdCopyName = "copy-name"
	CmdReload   = "reload"
	CmdQuit     = "quit"
)

type command struct {
	label    string
	shortcut fyne.Shortcut
	keys     []fyne.KeyName
	run      func()
}

func (v *Viewer) buildCommands() map[string]*command {
	return map[string]*command{
		CmdOpen: {
			label:    "Open…",
			shortcut: &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
			run:      v.showOpenDialog,
		},
		CmdNext: {
			label: "Next Image",
			keys:  []fyne.KeyName{fyne.KeyRight, fyne.KeySpace, fyne.KeyPageDown},
			run:   v.ShowNext,
		},
		CmdPrevious: {
			label: "Previous Image",
			keys:  []fyne.KeyName{fyne.KeyLeft, fyne.KeyBackspace, fyne.KeyPageUp},
			run:   v.ShowPrevious,
		},
		CmdFirst: {
			label: "First Image",
			keys:  []fyne.KeyName{fyne.KeyHome},
			run:   v.ShowFirst,
		},
		CmdLast: {
			label: "Last Image",
			keys:  []fyne.KeyName{fyne.KeyEnd},
			run:   v.ShowLast,
		},
		CmdCopyPath: {
			label:    "Copy Path",
			shortcut: &fyne.ShortcutCopy{},
			run:      v.CopyPath,
		},
		CmdCopyName: {
			label: "Copy File Name",
			shortcut: &desktop.CustomShortcut{
				KeyName:  fyne.KeyC,
				Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
			},
			run: v.CopyName,
		},
		CmdReload: {
			label: "Reload",
			keys:  []fyne.KeyName{fyne.KeyF5},
			run:   v.Reload,
		},
		CmdQuit: {
			label:    "Quit",
			shortcut: &desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault},
			run:      v.app.Quit,
		},
	}
}

// Dispatch runs the named command. It reports false for unknown names.
func (v *Viewer) Dispatch(name string) bool {
	c, ok := v.commands[name]
	if !ok {
		return false
	}
	v.log.Debug().Str("command", name).Msg("dispatch")
	c.run()
	return true
}

func (v *Viewer) menuItem(name string) *fyne.MenuItem {
	c := v.commands[name]
	item := fyne.NewMenuItem(c.label, func() {
		v.Dispatch(name)
	})
	item.Shortcut = c.shortcut
	return item
}

func (v *Viewer) buildMainMenu() *fyne.MainMenu {
	quit := v.menuItem(CmdQuit)
	quit.IsQuit = true

	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			v.menuItem(CmdOpen),
			v.menuItem(CmdReload),
			fyne.NewMenuItemSeparator(),
			quit,
		),
		fyne.NewMenu("Edit",
			v.menuItem(CmdCopyPath),
			v.menuItem(CmdCopyName),
		),
		fyne.NewMenu("Go",
			v.menuItem(CmdNext),
			v.menuItem(CmdPrevious),
			fyne.NewMenuItemSeparator(),
			v.menuItem(CmdFirst),
			v.menuItem(CmdLast),
		),
	)
}

func (v *Viewer) bindShortcuts() {
	v.keys = make(map[fyne.KeyName]string)
	for name, c := range v.commands {
		if c.shortcut != nil {
			v.win.Canvas().AddShortcut(c.shortcut, func(fyne.Shortcut) {
				v.Dispatch(name)
			})
		}
		for _, k := range c.keys {
			v.keys[k] = name
		}
	}
	v.win.Canvas().SetOnTypedKey(v.typedKey)
}

func (v *Viewer) typedKey(ev *fyne.KeyEvent) {
	if ev == nil {
		return
	}
	if name, ok := v.keys[ev.Name]; ok {
		v.Dispatch(name)
	}
}

package workspace

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// GlobalKeyMap defines keybindings that work in every context.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Search   key.Binding
	Refresh  key.Binding
	Blogs    key.Binding
	Tasks    key.Binding
	Leads    key.Binding
	Calendar key.Binding
}

// DefaultGlobalKeyMap returns the default global keybindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Blogs: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "blog posts"),
		),
		Tasks: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tasks"),
		),
		Leads: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "leads"),
		),
		Calendar: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "calendar"),
		),
	}
}

// ShortHelp returns the global key bindings for the status bar.
func (k GlobalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Back, k.Quit}
}

// FullHelp returns all global key bindings for the help overlay.
func (k GlobalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Blogs, k.Tasks, k.Leads, k.Calendar},
		{k.Back, k.Search, k.Refresh},
		{k.Help, k.Quit},
	}
}

// ListKeyMap defines keybindings for list navigation shared by every
// list screen. Screen-specific actions (publish, complete, schedule)
// are declared by the views themselves.
type ListKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	PageDown  key.Binding
	PageUp    key.Binding
	Open      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
}

// DefaultListKeyMap returns the default list navigation keybindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("j/k", "navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/k", "navigate"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "previous page"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
	}
}

// actionFieldMap maps action names (from keybindings.json) to
// GlobalKeyMap field names.
var actionFieldMap = map[string]string{
	"quit":     "Quit",
	"help":     "Help",
	"back":     "Back",
	"search":   "Search",
	"refresh":  "Refresh",
	"blogs":    "Blogs",
	"tasks":    "Tasks",
	"leads":    "Leads",
	"calendar": "Calendar",
}

// LoadKeyOverrides reads keybinding overrides from a JSON file.
// Returns an empty map (not an error) if the file doesn't exist.
func LoadKeyOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var overrides map[string]string
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// ApplyOverrides remaps keybindings in km according to the overrides
// map. Keys are action names (e.g. "refresh"), values are key strings
// (e.g. "ctrl+r"). Unknown actions are silently ignored.
func ApplyOverrides(km *GlobalKeyMap, overrides map[string]string) {
	v := reflect.ValueOf(km).Elem()
	for action, keyStr := range overrides {
		fieldName, ok := actionFieldMap[action]
		if !ok {
			continue
		}
		field := v.FieldByName(fieldName)
		if !field.IsValid() {
			continue
		}
		binding := field.Interface().(key.Binding)
		helpInfo := binding.Help()
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keyStr),
			key.WithHelp(keyStr, helpInfo.Desc),
		)))
	}
}

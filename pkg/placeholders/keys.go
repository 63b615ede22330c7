package placeholders

import (
	"github.com/arthur-debert/promptfill/pkg/errors"
)

// Key is the canonical name of a standard placeholder
type Key string

const (
	KeyInput          Key = "input"
	KeySelection      Key = "selection"
	KeyClipboard      Key = "clipboard"
	KeyCurrentApp     Key = "currentApp"
	KeyBrowserContent Key = "browserContent"
	KeyNow            Key = "now"
	KeyPromptTitles   Key = "promptTitles"
)

// KeyInfo describes one standard placeholder and its short alias
type KeyInfo struct {
	Key         Key
	Alias       string
	Description string
}

var defaultKeys = []KeyInfo{
	{Key: KeyInput, Alias: "i", Description: "Text typed by the user"},
	{Key: KeySelection, Alias: "s", Description: "Currently selected text"},
	{Key: KeyClipboard, Alias: "c", Description: "Clipboard contents"},
	{Key: KeyCurrentApp, Alias: "app", Description: "Name of the frontmost application"},
	{Key: KeyBrowserContent, Alias: "bc", Description: "Content of the active browser tab"},
	{Key: KeyNow, Alias: "n", Description: "Current date and time"},
	{Key: KeyPromptTitles, Alias: "pt", Description: "Titles of the available prompts"},
}

// Table maps aliases and canonical names onto standard keys. A Table is
// immutable once built and safe to share.
type Table struct {
	entries []KeyInfo
	lookup  map[string]Key
}

var defaultTable = mustTable(defaultKeys)

func mustTable(entries []KeyInfo) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns the built-in key table
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a table, rejecting blank or duplicate keys and any alias
// that collides with a key name or another alias.
func NewTable(entries []KeyInfo) (*Table, error) {
	t := &Table{
		entries: make([]KeyInfo, 0, len(entries)),
		lookup:  make(map[string]Key, len(entries)*2),
	}

	for _, e := range entries {
		if e.Key == "" {
			return nil, errors.New(errors.ErrInvalidInput, "placeholder key cannot be empty")
		}
		if _, taken := t.lookup[string(e.Key)]; taken {
			return nil, errors.Newf(errors.ErrAliasCollision, "placeholder key %q is already defined", e.Key).
				WithDetail("key", string(e.Key))
		}
		t.lookup[string(e.Key)] = e.Key
	}

	for _, e := range entries {
		if e.Alias == "" {
			t.entries = append(t.entries, e)
			continue
		}
		if owner, taken := t.lookup[e.Alias]; taken {
			return nil, errors.Newf(errors.ErrAliasCollision, "alias %q of %q collides with %q", e.Alias, e.Key, owner).
				WithDetail("alias", e.Alias).
				WithDetail("key", string(e.Key))
		}
		t.lookup[e.Alias] = e.Key
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// Resolve returns the key named by token, either directly or via its alias
func (t *Table) Resolve(token string) (Key, bool) {
	key, ok := t.lookup[token]
	return key, ok
}

// IsStandard reports whether token names a standard placeholder
func (t *Table) IsStandard(token string) bool {
	_, ok := t.lookup[token]
	return ok
}

// Keys lists the table entries in declaration order
func (t *Table) Keys() []KeyInfo {
	out := make([]KeyInfo, len(t.entries))
	copy(out, t.entries)
	return out
}

// Info returns the entry for key
func (t *Table) Info(key Key) (KeyInfo, bool) {
	for _, e := range t.entries {
		if e.Key == key {
			return e, true
		}
	}
	return KeyInfo{}, false
}

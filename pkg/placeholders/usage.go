package placeholders

import (
	"github.com/arthur-debert/promptfill/pkg/values"
)

// UsedKeys reports which standard keys would win some chain in text, in
// table order. Only plain standard references count: file: tokens are
// skipped whole, while directive-qualified segments and property paths are
// passed over. No files are touched.
func (t *Table) UsedKeys(text string, effective EffectiveMap) []Key {
	used := make(map[Key]bool)

	for _, tok := range Tokens(text) {
		if tok.Directive == DirectiveFile {
			continue
		}
		for _, ref := range tok.Chain() {
			if ref.Directive != DirectiveNone {
				continue
			}
			key, ok := t.Resolve(ref.Path)
			if !ok {
				continue
			}
			if _, present := effective[key]; present {
				used[key] = true
				break
			}
		}
	}

	keys := make([]Key, 0, len(used))
	for _, info := range t.entries {
		if used[info.Key] {
			keys = append(keys, info.Key)
		}
	}
	return keys
}

// UsedKeys is Table.UsedKeys against the effective map of bag
func (f *Formatter) UsedKeys(text string, bag values.Value) []Key {
	return f.table.UsedKeys(text, f.Effective(bag))
}

// PendingOptions lists the option: paths in text that have no usable value
// in bag yet, in order of first appearance.
func (f *Formatter) PendingOptions(text string, bag values.Value) []string {
	c := &call{f: f, bag: bag}

	var pending []string
	seen := make(map[string]bool)
	for _, tok := range Tokens(text) {
		for _, ref := range tok.Chain() {
			if ref.Directive != DirectiveOption || ref.Path == "" || seen[ref.Path] {
				continue
			}
			if _, ok := c.option(ref.Path); ok {
				continue
			}
			seen[ref.Path] = true
			pending = append(pending, ref.Path)
		}
	}
	return pending
}

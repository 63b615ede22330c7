// Package values models the value bag a template is formatted against.
//
// A bag is a tree of Value nodes (string, number, bool, null, array, map)
// built from loosely-typed Go data, YAML/JSON or TOML. Maps keep their key
// order so "first entry" has a stable meaning for option lists.
//
// Property paths address nested nodes with dot-separated segments, where a
// segment is a map key or, for arrays, a non-negative index:
//
//	bag := values.FromAny(map[string]any{
//	    "items": []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}},
//	})
//	v, ok := bag.Lookup("items.1.name") // "B", true
//
// Lookup is total: a missing key, bad index or type mismatch reports
// (Null, false) and never panics.
package values

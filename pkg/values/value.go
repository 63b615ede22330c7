package values

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is an immutable node of the value bag
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	items   []Value
	keys    []string
	props   map[string]Value
}

// Null is the absent value
var Null = Value{}

// String creates a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a number value
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool creates a bool value
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Array creates an array value
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindArray, items: copied}
}

// Entry is one key/value pair of a map value
type Entry struct {
	Key   string
	Value Value
}

// Map creates a map value keeping the entries' order. A repeated key keeps
// its first position and takes the last value.
func Map(entries ...Entry) Value {
	v := Value{kind: KindMap, props: make(map[string]Value, len(entries))}
	for _, e := range entries {
		if _, exists := v.props[e.Key]; !exists {
			v.keys = append(v.keys, e.Key)
		}
		v.props[e.Key] = e.Value
	}
	return v
}

// Kind returns the variant of v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the absent value
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the raw string and whether v is a string
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Len returns the number of array items or map entries
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindMap:
		return len(v.keys)
	default:
		return 0
	}
}

// Index returns the i-th array item
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Null, false
	}
	return v.items[i], true
}

// Get returns the map entry for key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null, false
	}
	child, ok := v.props[key]
	return child, ok
}

// Keys returns the map keys in order
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// First returns the first array item or the value of the first map entry
func (v Value) First() (Value, bool) {
	switch v.kind {
	case KindArray:
		return v.Index(0)
	case KindMap:
		if len(v.keys) == 0 {
			return Null, false
		}
		return v.props[v.keys[0]], true
	default:
		return Null, false
	}
}

// With returns a copy of the map v with key set to child. A non-map v is
// treated as an empty map.
func (v Value) With(key string, child Value) Value {
	entries := make([]Entry, 0, v.Len()+1)
	if v.kind == KindMap {
		for _, k := range v.keys {
			entries = append(entries, Entry{Key: k, Value: v.props[k]})
		}
	}
	entries = append(entries, Entry{Key: key, Value: child})
	return Map(entries...)
}

// WithPath is With for a dotted path, creating intermediate maps as needed
func (v Value) WithPath(path string, child Value) Value {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		return v.With(head, child)
	}
	inner, _ := v.Get(head)
	return v.With(head, inner.WithPath(rest, child))
}

// Lookup resolves a dotted property path. Each segment is a map key or,
// for arrays, a non-negative integer index.
func (v Value) Lookup(path string) (Value, bool) {
	if path == "" {
		return Null, false
	}

	current := v
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return Null, false
		}

		switch current.kind {
		case KindMap:
			next, ok := current.props[segment]
			if !ok {
				return Null, false
			}
			current = next
		case KindArray:
			idx, ok := parseIndex(segment)
			if !ok {
				return Null, false
			}
			next, ok := current.Index(idx)
			if !ok {
				return Null, false
			}
			current = next
		default:
			return Null, false
		}
	}

	return current, true
}

// parseIndex accepts plain non-negative decimals only: no sign and no
// leading zero except for "0" itself.
func parseIndex(segment string) (int, bool) {
	if segment == "" || (len(segment) > 1 && segment[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// String renders v as text: strings verbatim, integral numbers without a
// fraction, bools as true/false, null as "" and containers as JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindArray, KindMap:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MarshalJSON encodes v keeping map key order
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(formatNumber(v.num))
		}
		return []byte(formatNumber(v.num)), nil
	case KindBool:
		return json.Marshal(v.boolean)
	case KindArray:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			parts = append(parts, string(b))
		}
		return []byte("[" + strings.Join(parts, ",") + "]"), nil
	case KindMap:
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			val, err := v.props[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			parts = append(parts, string(key)+":"+string(val))
		}
		return []byte("{" + strings.Join(parts, ",") + "}"), nil
	default:
		return []byte("null"), nil
	}
}

// FromAny converts loosely-typed Go data into a Value. Go maps have no
// order, so their entries are sorted by key.
func FromAny(data any) Value {
	switch d := data.(type) {
	case nil:
		return Null
	case Value:
		return d
	case string:
		return String(d)
	case bool:
		return Bool(d)
	case int:
		return Number(float64(d))
	case int8:
		return Number(float64(d))
	case int16:
		return Number(float64(d))
	case int32:
		return Number(float64(d))
	case int64:
		return Number(float64(d))
	case uint:
		return Number(float64(d))
	case uint8:
		return Number(float64(d))
	case uint16:
		return Number(float64(d))
	case uint32:
		return Number(float64(d))
	case uint64:
		return Number(float64(d))
	case float32:
		return Number(float64(d))
	case float64:
		return Number(d)
	case json.Number:
		n, err := d.Float64()
		if err != nil {
			return String(d.String())
		}
		return Number(n)
	case []string:
		items := make([]Value, len(d))
		for i, s := range d {
			items[i] = String(s)
		}
		return Value{kind: KindArray, items: items}
	case []any:
		items := make([]Value, len(d))
		for i, item := range d {
			items[i] = FromAny(item)
		}
		return Value{kind: KindArray, items: items}
	case map[string]string:
		keys := sortedKeys(d)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: String(d[k])}
		}
		return Map(entries...)
	case map[string]any:
		keys := sortedKeys(d)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: FromAny(d[k])}
		}
		return Map(entries...)
	case fmt.Stringer:
		return String(d.String())
	default:
		return String(fmt.Sprint(d))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

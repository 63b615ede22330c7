package values_test

import (
	"testing"

	"github.com/arthur-debert/promptfill/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBag() values.Value {
	return values.FromAny(map[string]any{
		"name":  "World",
		"count": 3,
		"ratio": 0.5,
		"ok":    true,
		"none":  nil,
		"items": []any{
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
		},
		"user": map[string]any{
			"profile": map[string]any{"email": "a@b.c"},
		},
	})
}

func TestLookup(t *testing.T) {
	bag := sampleBag()

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{name: "top level key", path: "name", want: "World", wantOK: true},
		{name: "nested map", path: "user.profile.email", want: "a@b.c", wantOK: true},
		{name: "array index", path: "items.1.name", want: "B", wantOK: true},
		{name: "index out of range", path: "items.5.name", wantOK: false},
		{name: "negative index", path: "items.-1.name", wantOK: false},
		{name: "zero index", path: "items.0.name", want: "A", wantOK: true},
		{name: "negative zero index", path: "items.-0.name", wantOK: false},
		{name: "leading zero index", path: "items.01.name", wantOK: false},
		{name: "signed index", path: "items.+1.name", wantOK: false},
		{name: "non numeric index", path: "items.x", wantOK: false},
		{name: "descend into scalar", path: "name.first", wantOK: false},
		{name: "missing key", path: "nope", wantOK: false},
		{name: "empty path", path: "", wantOK: false},
		{name: "empty segment", path: "user..profile", wantOK: false},
		{name: "null value is present", path: "none", want: "", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bag.Lookup(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestString(t *testing.T) {
	bag := sampleBag()

	count, _ := bag.Lookup("count")
	assert.Equal(t, "3", count.String())

	ratio, _ := bag.Lookup("ratio")
	assert.Equal(t, "0.5", ratio.String())

	ok, _ := bag.Lookup("ok")
	assert.Equal(t, "true", ok.String())

	items, _ := bag.Lookup("items")
	assert.Equal(t, `[{"name":"A"},{"name":"B"}]`, items.String())

	assert.Equal(t, "", values.Null.String())
}

func TestMapKeepsOrder(t *testing.T) {
	m := values.Map(
		values.Entry{Key: "zeta", Value: values.String("z")},
		values.Entry{Key: "alpha", Value: values.String("a")},
		values.Entry{Key: "zeta", Value: values.String("z2")},
	)

	assert.Equal(t, []string{"zeta", "alpha"}, m.Keys())
	assert.Equal(t, `{"zeta":"z2","alpha":"a"}`, m.String())

	first, ok := m.First()
	require.True(t, ok)
	assert.Equal(t, "z2", first.String())
}

func TestFirst(t *testing.T) {
	arr := values.Array(values.String("x"), values.String("y"))
	first, ok := arr.First()
	require.True(t, ok)
	assert.Equal(t, "x", first.String())

	_, ok = values.Array().First()
	assert.False(t, ok)

	_, ok = values.Map().First()
	assert.False(t, ok)

	_, ok = values.String("s").First()
	assert.False(t, ok)
}

func TestFromAnySortsGoMaps(t *testing.T) {
	v := values.FromAny(map[string]any{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
}

func TestWith(t *testing.T) {
	base := values.FromAny(map[string]any{"a": "1"})

	updated := base.With("b", values.String("2"))
	assert.Equal(t, []string{"a", "b"}, updated.Keys())

	// base is untouched
	_, ok := base.Get("b")
	assert.False(t, ok)

	nested := base.WithPath("user.name", values.String("Ada"))
	got, ok := nested.Lookup("user.name")
	require.True(t, ok)
	assert.Equal(t, "Ada", got.String())

	overwritten := base.With("a", values.String("x"))
	got, _ = overwritten.Get("a")
	assert.Equal(t, "x", got.String())
	assert.Equal(t, 1, overwritten.Len())
}

func TestKind(t *testing.T) {
	assert.Equal(t, values.KindNull, values.Null.Kind())
	assert.True(t, values.Null.IsNull())
	assert.Equal(t, "map", values.Map().Kind().String())

	s, ok := values.String("x").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = values.Number(1).Str()
	assert.False(t, ok)
}

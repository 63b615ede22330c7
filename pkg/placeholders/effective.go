package placeholders

import (
	"strings"
	"time"

	"github.com/arthur-debert/promptfill/pkg/values"
)

// DefaultNowLayout renders "now" as e.g. "3/14/2026, 9:26:53 AM"
const DefaultNowLayout = "1/2/2006, 3:04:05 PM"

// EffectiveMap holds the standard keys that have a usable string value
type EffectiveMap map[Key]string

// BuildEffective keeps the standard keys of bag whose value is a string
// with non-blank trimmed form, and fills in "now" when it is missing.
func BuildEffective(table *Table, bag values.Value, now time.Time, layout string) EffectiveMap {
	if table == nil {
		table = DefaultTable()
	}
	if layout == "" {
		layout = DefaultNowLayout
	}

	effective := make(EffectiveMap, len(table.entries)+1)
	for _, info := range table.entries {
		v, ok := bag.Get(string(info.Key))
		if !ok {
			continue
		}
		s, isString := v.Str()
		if !isString {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			effective[info.Key] = trimmed
		}
	}

	if _, ok := effective[KeyNow]; !ok {
		effective[KeyNow] = now.Format(layout)
	}
	return effective
}

package style

import (
	"encoding/json"
	"strings"

	"github.com/pterm/pterm"
)

// Table is a header plus rows of cells
type Table struct {
	Header []string
	Rows   [][]string
}

// Render formats t for f. JSON output is a list of objects keyed by the
// header; text and terminal output is an aligned table.
func (t Table) Render(f Format) (string, error) {
	if f == FormatJSON {
		return t.renderJSON()
	}

	data := pterm.TableData{t.Header}
	data = append(data, t.Rows...)

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if f != FormatTerminal {
		table = table.
			WithHeaderStyle(pterm.NewStyle()).
			WithSeparatorStyle(pterm.NewStyle())
	}

	out, err := table.Srender()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func (t Table) renderJSON() (string, error) {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Header))
		for i, name := range t.Header {
			if i < len(row) {
				record[strings.ToLower(name)] = row[i]
			}
		}
		records = append(records, record)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// Package style renders promptfill's terminal output.
//
// Styles have semantic names (Title, Key, Alias, Error, ...) and adaptive
// colors that follow the terminal's light or dark background. They are
// defined in an embedded YAML file and can be replaced at runtime with
// LoadStyles.
//
// Output degrades to plain text when stdout is not a terminal or NO_COLOR is
// set, and tables can also be emitted as JSON for scripting.
package style

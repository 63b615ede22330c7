package values

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/filesystem"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a serialization a value bag can be read from
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks a Format from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrValuesLoad, "unsupported values file extension %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// LoadFile reads a value bag from path, choosing the parser by extension
func LoadFile(fs filesystem.FS, path string) (Value, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Null, err
	}

	if fs == nil {
		fs = filesystem.NewOS()
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return Null, errors.Wrapf(err, errors.ErrValuesLoad, "failed to read values file").
			WithDetail("path", path)
	}

	v, err := Parse(data, format)
	if err != nil {
		return Null, errors.Wrap(err, errors.ErrValuesParse, "failed to parse values file").
			WithDetail("path", path)
	}
	return v, nil
}

// Parse decodes data in the given format. YAML and JSON keep document key
// order; TOML tables are sorted by key.
func Parse(data []byte, format Format) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Map(), nil
	}

	switch format {
	case FormatYAML, FormatJSON:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Null, errors.Wrapf(err, errors.ErrValuesParse, "invalid %s", format)
		}
		return fromNode(&doc)
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Null, errors.Wrapf(err, errors.ErrValuesParse, "invalid toml")
		}
		return FromAny(raw), nil
	default:
		return Null, errors.Newf(errors.ErrValuesParse, "unknown values format %q", format)
	}
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Map(), nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromNode(child)
			if err != nil {
				return Null, err
			}
			items = append(items, item)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return Null, err
			}
			child, err := fromNode(node.Content[i+1])
			if err != nil {
				return Null, err
			}
			entries = append(entries, Entry{Key: key, Value: child})
		}
		return Map(entries...), nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Null, nil
	}
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Null, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Null, err
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

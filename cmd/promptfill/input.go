package promptfill

import (
	"io"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/values"
	"github.com/spf13/cobra"
)

// valueFlags are the value sources shared by render, keys and options
type valueFlags struct {
	files []string
	sets  []string
}

func (v *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&v.files, "values", "f", nil, MsgFlagValues)
	cmd.Flags().StringArrayVar(&v.sets, "set", nil, MsgFlagSet)
}

// bag merges the values files in order, top-level keys of later files
// replacing earlier ones, then applies --set assignments.
func (v *valueFlags) bag(fs filesystem.FS) (values.Value, error) {
	bag := values.Map()

	for _, path := range v.files {
		loaded, err := values.LoadFile(fs, path)
		if err != nil {
			return values.Null, err
		}
		for _, key := range loaded.Keys() {
			child, _ := loaded.Get(key)
			bag = bag.With(key, child)
		}
	}

	for _, assignment := range v.sets {
		key, value, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return values.Null, errors.Newf(errors.ErrInvalidInput, MsgErrBadSet, assignment)
		}
		bag = bag.WithPath(key, values.String(value))
	}

	return bag, nil
}

// readTemplate reads the template at path, or stdin when path is empty
func readTemplate(cmd *cobra.Command, fs filesystem.FS, path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, MsgErrReadStdin)
		}
		return string(data), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadTemplate, path)
	}
	return string(data), nil
}

func templateArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

package output_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "prompt.txt")
	w := output.NewWriter()

	require.NoError(t, w.Write(context.Background(), target, []byte("first"), output.WriteOptions{}))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	err = w.Write(context.Background(), target, []byte("second"), output.WriteOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	require.NoError(t, w.Write(context.Background(), target, []byte("second"), output.WriteOptions{Force: true}))
	got, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestWriter_Errors(t *testing.T) {
	w := output.NewWriter()

	err := w.Write(context.Background(), "", []byte("x"), output.WriteOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = w.Write(context.Background(), t.TempDir(), []byte("x"), output.WriteOptions{Force: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

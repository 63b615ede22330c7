package config

import (
	"io"
	"os"
	"testing"

	"github.com/arthur-debert/promptfill/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.Setup(logging.Options{Console: io.Discard, LogFile: logging.DisableLogFile})
	os.Exit(m.Run())
}

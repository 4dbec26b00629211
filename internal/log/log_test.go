package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/op/go-logging.v1"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]logging.Level{
		"ERROR":   logging.ERROR,
		"warning": logging.WARNING,
		"Notice":  logging.NOTICE,
		"INFO":    logging.INFO,
		"debug":   logging.DEBUG,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("LOUD")
	require.Error(t, err)
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mlkem.log")
	b, err := New(path, "INFO", false)
	require.NoError(t, err)

	l := b.GetLogger("test")
	l.Info("visible")
	l.Debug("hidden")
	require.True(t, b.IsEnabledFor(logging.INFO, "test"))
	require.False(t, b.IsEnabledFor(logging.DEBUG, "test"))
	require.NoError(t, b.Close())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), "INFO test: visible")
	require.NotContains(t, string(out), "hidden")
}

func TestDisabledBackend(t *testing.T) {
	b, err := New("", "DEBUG", true)
	require.NoError(t, err)
	b.GetLogger("test").Error("discarded")
	require.NoError(t, b.Close())

	_, err = New("", "NOPE", false)
	require.Error(t, err)
}

package testutil

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogBuffer is a goroutine-safe buffer for captured log lines
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// CaptureLogs points the global logger at a buffer of JSON lines for the
// duration of the test. Loggers must be created after this call.
func CaptureLogs(t *testing.T) *LogBuffer {
	t.Helper()

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	buf := &LogBuffer{}
	log.Logger = zerolog.New(buf).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	return buf
}

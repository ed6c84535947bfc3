package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out)
	s.Start("Fetching C111887...")
	time.Sleep(3 * tickInterval)
	s.Update("Parsing")
	time.Sleep(3 * tickInterval)
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "Fetching C111887...")
	assert.Contains(t, got, "Parsing")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"))

	// Stop is idempotent.
	s.Stop()
	assert.Equal(t, got, out.String())
}

func TestSpinnerNilWriter(t *testing.T) {
	s := NewSpinner(nil)
	s.Start("quiet")
	s.Update("still quiet")
	s.Stop()
}

package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

const tickInterval = 80 * time.Millisecond

// Spinner draws an animated progress line with the elapsed time. Update is
// safe to call from any goroutine, so it can be handed to
// lcsc.WithProgress directly.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	msg     string
	started time.Time
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner that draws on w. A nil w disables drawing.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins the animation. Starting a running spinner only replaces the
// message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if s.done != nil || s.w == nil {
		return
	}
	s.started = time.Now()
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run(s.done, s.stopped)
}

// Update changes the message while the spinner runs.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()
	if done == nil {
		return
	}

	close(done)
	<-stopped
	fmt.Fprint(s.w, "\r\033[K")
}

func (s *Spinner) run(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-tick.C:
			fmt.Fprint(s.w, s.frame(i))
		}
	}
}

func (s *Spinner) frame(i int) string {
	s.mu.Lock()
	msg, elapsed := s.msg, time.Since(s.started)
	s.mu.Unlock()
	return fmt.Sprintf("\r\033[K%c %s (%.1fs)", frames[i%len(frames)], msg, elapsed.Seconds())
}

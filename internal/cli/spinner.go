package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// spinnerFrames is the six-dot braille cycle rendered while an analysis
// or render step is in flight.
var spinnerFrames = [...]string{"⠷", "⠯", "⠟", "⠻", "⠽", "⠾"}

// spinnerSlowAfter is how long a step runs before the spinner starts
// appending the elapsed time to its message.
const spinnerSlowAfter = 3 * time.Second

// Spinner renders an in-flight indicator on stderr for long-running
// steps. It stops on Stop or when its parent context is cancelled, and
// Stop is safe to call more than once.
type Spinner struct {
	message  string
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	stopOnce sync.Once
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		ctx:      ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start launches the render loop. The loop owns stderr until the
// context is cancelled, after which it erases its line and exits.
func (s *Spinner) Start() {
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		started := time.Now()
		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.eraseLine()
				return
			case <-ticker.C:
				s.render(frame, time.Since(started))
			}
		}
	}()
}

func (s *Spinner) render(frame int, elapsed time.Duration) {
	label := s.message
	if elapsed >= spinnerSlowAfter {
		label = fmt.Sprintf("%s (%ds)", s.message, int(elapsed.Seconds()))
	}
	glyph := spinnerFrames[frame%len(spinnerFrames)]
	fmt.Fprintf(os.Stderr, "\r\x1b[2K%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(label))
}

func (s *Spinner) eraseLine() {
	fmt.Fprint(os.Stderr, "\r\x1b[2K")
}

// Stop cancels the render loop and waits for it to release the line.
func (s *Spinner) Stop() {
	s.stopOnce.Do(s.cancel)
	<-s.finished
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, either through
// Stop or through cancellation of the parent context.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

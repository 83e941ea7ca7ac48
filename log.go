package greywater

import (
	"log/slog"
	"slices"
	"sync"
)

// Sink receives human-readable notices whenever sanitization stripped
// content. The sanitizer calls it at least once per stripped element,
// attribute, comment or processing instruction. Rewriting an unsafe URL to
// its "unsafe:" form is not a strip and produces no notice.
type Sink interface {
	Log(msg string)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(msg string)

func (f SinkFunc) Log(msg string) { f(msg) }

type discardSink struct{}

func (discardSink) Log(string) {}

// SlogSink returns a Sink that forwards notices to logger at warn level.
// A nil logger uses slog.Default().
func SlogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return SinkFunc(func(msg string) { logger.Warn(msg) })
}

// CountingSink records every notice it receives. It is safe for concurrent
// use and may be shared across calls; use Reset between them if per-call
// counts are wanted.
type CountingSink struct {
	mu       sync.Mutex
	messages []string
}

func (self *CountingSink) Log(msg string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.messages = append(self.messages, msg)
}

// Len returns the number of notices received so far.
func (self *CountingSink) Len() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return len(self.messages)
}

// Messages returns a copy of the notices received so far.
func (self *CountingSink) Messages() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return slices.Clone(self.messages)
}

// Reset discards recorded notices.
func (self *CountingSink) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.messages = nil
}

// Outcome is the result of a single sanitization pass: the sanitized markup
// plus the stripped-content notices emitted while producing it.
type Outcome struct {
	HTML    string
	Notices []string
}

// Stripped reports whether anything was removed from the input.
func (self *Outcome) Stripped() bool { return len(self.Notices) > 0 }

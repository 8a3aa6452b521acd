// Package progress carries solver status and counters to whoever is watching
// a search: a polling front end, the logs or the metrics endpoint.
package progress

//go:generate mockgen -destination=mock/mock_sink.go -package=progressmock github.com/FlatBartender/bis-solver/internal/progress Sink

import (
	"sync"
	"sync/atomic"

	"github.com/FlatBartender/bis-solver/internal/gear"
)

// Sink receives free-text status updates and a processed-candidates counter.
// Calls may come from many goroutines at once.
type Sink interface {
	// Message announces the stage the search is in.
	Message(status string)
	// Add counts n more evaluated candidates.
	Add(n uint64)
	// Reset zeroes the counter, typically between stages.
	Reset()
}

type nop struct{}

func (nop) Message(string) {}
func (nop) Add(uint64)     {}
func (nop) Reset()         {}

// Nop discards everything.
var Nop Sink = nop{}

type multi []Sink

// Multi fans every call out to all sinks.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Message(status string) {
	for _, s := range m {
		s.Message(status)
	}
}

func (m multi) Add(n uint64) {
	for _, s := range m {
		s.Add(n)
	}
}

func (m multi) Reset() {
	for _, s := range m {
		s.Reset()
	}
}

// Link is shared between a running search and a front end that polls it.
// The counter is eventually consistent with the work actually done.
type Link struct {
	processed atomic.Uint64

	mu      sync.Mutex
	status  string
	results []gear.Gearset
	done    bool
	err     error
}

var _ Sink = (*Link)(nil)

func NewLink() *Link {
	return &Link{}
}

func (l *Link) Message(status string) {
	l.mu.Lock()
	l.status = status
	l.mu.Unlock()
}

func (l *Link) Add(n uint64) {
	l.processed.Add(n)
}

func (l *Link) Reset() {
	l.processed.Store(0)
}

// Status returns the last status message and the counter.
func (l *Link) Status() (string, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status, l.processed.Load()
}

// Publish hands the final ranking, or the error that ended the search, to
// the front end.
func (l *Link) Publish(results []gear.Gearset, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = results
	l.err = err
	l.done = true
}

// Results returns the published ranking. done is false while the search runs.
func (l *Link) Results() (results []gear.Gearset, done bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.results, l.done, l.err
}

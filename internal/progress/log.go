package progress

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// LogSink writes status changes to a logger, and the counter every time it
// crosses a multiple of every.
type LogSink struct {
	log       *zap.Logger
	every     uint64
	processed atomic.Uint64
}

var _ Sink = (*LogSink)(nil)

func NewLogSink(log *zap.Logger, every uint64) *LogSink {
	if every == 0 {
		every = 1_000_000
	}
	return &LogSink{log: log, every: every}
}

func (s *LogSink) Message(status string) {
	s.log.Info(status)
}

func (s *LogSink) Add(n uint64) {
	after := s.processed.Add(n)
	if after/s.every != (after-n)/s.every {
		s.log.Debug("progress", zap.Uint64("candidates", after))
	}
}

func (s *LogSink) Reset() {
	s.processed.Store(0)
}

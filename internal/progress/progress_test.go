package progress_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/progress"
	progressmock "github.com/FlatBartender/bis-solver/internal/progress/mock"
)

func TestLinkCountsConcurrently(t *testing.T) {
	l := progress.NewLink()
	l.Message("Ranking gear...")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				l.Add(1)
			}
		}()
	}
	wg.Wait()

	status, n := l.Status()
	assert.Equal(t, "Ranking gear...", status)
	assert.Equal(t, uint64(16000), n)

	l.Reset()
	_, n = l.Status()
	assert.Zero(t, n)
}

func TestLinkPublish(t *testing.T) {
	l := progress.NewLink()
	_, done, _ := l.Results()
	assert.False(t, done)

	sets := []gear.Gearset{gear.FromItems(gear.SageBase, [gear.SlotCount]gear.Item{})}
	l.Publish(sets, nil)
	got, done, err := l.Results()
	assert.True(t, done)
	assert.NoError(t, err)
	assert.Equal(t, sets, got)

	l.Publish(nil, errors.FailedPrecondition("leftover items"))
	_, _, err = l.Results()
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestMultiFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := progressmock.NewMockSink(ctrl)
	b := progressmock.NewMockSink(ctrl)

	gomock.InOrder(
		a.EXPECT().Message("Loading items..."),
		a.EXPECT().Add(uint64(3)),
		a.EXPECT().Reset(),
	)
	b.EXPECT().Message("Loading items...")
	b.EXPECT().Add(uint64(3))
	b.EXPECT().Reset()

	s := progress.Multi(a, b)
	s.Message("Loading items...")
	s.Add(3)
	s.Reset()
}

func TestLogSinkThrottlesCounter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := progress.NewLogSink(zap.New(core), 10)

	s.Message("Ranking gear...")
	for range 25 {
		s.Add(1)
	}
	s.Add(10)

	assert.Equal(t, 1, logs.FilterMessage("Ranking gear...").Len())
	assert.Equal(t, 3, logs.FilterMessage("progress").Len())

	progress.Nop.Add(1)
}

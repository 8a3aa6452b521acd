package solver

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

const batchSize = 512

// rank drains candidates through the evaluator on all workers and keeps the
// k best. A producer goroutine cuts the lazy candidate stream into batches,
// each worker keeps its own top k, and the partial results are merged once
// every worker is done. Invalid gearsets are skipped without being counted.
func (o *options) rank(ctx context.Context, stage string, k int, eval evaluator.Evaluator, candidates iter.Seq[gear.Gearset]) ([]scored, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, stage+" ranking interrupted")
	}
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []gear.Gearset, o.workers)

	g.Go(func() error {
		defer close(batches)
		batch := make([]gear.Gearset, 0, batchSize)
		for c := range candidates {
			if !c.IsValid() {
				continue
			}
			batch = append(batch, c)
			if len(batch) < batchSize {
				continue
			}
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
			batch = make([]gear.Gearset, 0, batchSize)
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	locals := make([]*topK, o.workers)
	counts := make([]uint64, o.workers)
	for w := range o.workers {
		locals[w] = newTopK(k)
		g.Go(func() error {
			for batch := range batches {
				if err := ctx.Err(); err != nil {
					return err
				}
				for i := range batch {
					locals[w].push(scored{set: batch[i], dps: eval.DPS(&batch[i]), hash: batch[i].Hash()})
				}
				counts[w] += uint64(len(batch))
				o.sink.Add(uint64(len(batch)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, stage+" ranking interrupted")
	}

	best := newTopK(k)
	var evaluated uint64
	for w := range locals {
		best.merge(locals[w])
		evaluated += counts[w]
	}
	out := best.best()

	fields := []zap.Field{
		zap.String("stage", stage),
		zap.Uint64("candidates", evaluated),
		zap.Int("kept", len(out)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if len(out) > 0 {
		fields = append(fields, zap.Float64("best", out[0].dps))
	}
	o.log.Info("stage ranked", fields...)
	return out, nil
}

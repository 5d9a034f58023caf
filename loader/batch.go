// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechfront/audio"
)

const DefaultWorkers = 2

// Strategy is how a Batch decodes its inputs.
type Strategy int

const (
	// StrategyConcurrent decodes on a bounded executor ahead of the consumer.
	StrategyConcurrent Strategy = iota
	// StrategySequential decodes one item at a time while iterating.
	StrategySequential
)

func (s Strategy) String() string {
	switch s {
	case StrategyConcurrent:
		return "concurrent"
	case StrategySequential:
		return "sequential"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Loader decodes many inputs while keeping their order.
type Loader struct {
	Decoder *Decoder
	Workers int
	// Parallel false always selects StrategySequential.
	Parallel    bool
	NewExecutor ExecutorFactory
	Log         logrus.FieldLogger
}

func New(dec *Decoder, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Loader{
		Decoder:     dec,
		Workers:     DefaultWorkers,
		Parallel:    true,
		NewExecutor: NewPool,
		Log:         log,
	}
}

type result struct {
	wf  *audio.Waveform
	err error
}

// Batch is a lazy, single-pass sequence of decoded waveforms.
type Batch struct {
	strategy Strategy
	inputs   []audio.Input
	dec      *Decoder

	ctx    context.Context
	cancel context.CancelFunc

	exec       Executor
	results    []chan result
	taskCancel context.CancelFunc

	used      atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// LoadMany starts decoding inputs. With the concurrent strategy every item
// is handed to the executor before LoadMany returns. If that fails the
// batch falls back to decoding sequentially from the first item.
func (l *Loader) LoadMany(ctx context.Context, inputs []audio.Input) *Batch {
	ctx, cancel := context.WithCancel(ctx)
	b := &Batch{
		strategy: StrategySequential,
		inputs:   inputs,
		dec:      l.Decoder,
		ctx:      ctx,
		cancel:   cancel,
	}

	strategy, err := b.selectStrategy(l.Parallel, l.executorFactory(), l.Workers)
	if err != nil {
		l.logger().WithFields(logrus.Fields{
			"function": "LoadMany",
			"inputs":   len(inputs),
			"error":    err.Error(),
		}).Warn("Concurrent loading unavailable, falling back to sequential")
	}
	b.strategy = strategy

	return b
}

// selectStrategy picks how b decodes. A dispatch failure selects
// StrategySequential and is returned so the caller can report it.
func (b *Batch) selectStrategy(parallel bool, factory ExecutorFactory, workers int) (Strategy, error) {
	if !parallel {
		return StrategySequential, nil
	}
	if err := b.dispatch(factory, workers); err != nil {
		return StrategySequential, err
	}

	return StrategyConcurrent, nil
}

func (b *Batch) dispatch(factory ExecutorFactory, workers int) error {
	if workers < 1 {
		workers = DefaultWorkers
	}

	exec, err := factory(workers)
	if err != nil {
		return &DispatchError{Err: err}
	}

	results := make([]chan result, len(b.inputs))
	taskCtx, taskCancel := context.WithCancel(b.ctx)

	for i, in := range b.inputs {
		ch := make(chan result, 1)
		results[i] = ch

		err := exec.Submit(func() {
			wf, err := decodeSafe(taskCtx, b.dec, in)
			ch <- result{wf: wf, err: err}
		})
		if err != nil {
			taskCancel()
			_ = exec.Close()
			return &DispatchError{Submitted: i, Err: err}
		}
	}

	b.exec = exec
	b.results = results
	b.taskCancel = taskCancel

	return nil
}

func (b *Batch) Strategy() Strategy { return b.strategy }
func (b *Batch) Len() int           { return len(b.inputs) }

// All yields one (waveform, error) pair per input, in input order. A
// failed item carries its error and iteration continues. The sequence can
// be consumed once; later calls yield nothing. If the batch context ends,
// All yields the context error and stops.
func (b *Batch) All() iter.Seq2[*audio.Waveform, error] {
	return func(yield func(*audio.Waveform, error) bool) {
		if !b.used.CompareAndSwap(false, true) {
			return
		}
		defer b.Close()

		for i, in := range b.inputs {
			r, ok := b.next(i, in)
			if !ok {
				yield(nil, b.ctx.Err())
				return
			}
			if !yield(r.wf, r.err) {
				return
			}
		}
	}
}

func (b *Batch) next(i int, in audio.Input) (result, bool) {
	if b.ctx.Err() != nil {
		return result{}, false
	}

	if b.strategy == StrategyConcurrent {
		select {
		case r := <-b.results[i]:
			return r, true
		case <-b.ctx.Done():
			return result{}, false
		}
	}

	wf, err := decodeSafe(b.ctx, b.dec, in)

	return result{wf: wf, err: err}, true
}

// Close cancels outstanding decodes and waits for running tasks. It is
// safe to call more than once.
func (b *Batch) Close() error {
	b.closeOnce.Do(func() {
		b.cancel()
		if b.taskCancel != nil {
			b.taskCancel()
		}
		if b.exec != nil {
			b.closeErr = b.exec.Close()
		}
	})

	return b.closeErr
}

func (l *Loader) executorFactory() ExecutorFactory {
	if l.NewExecutor == nil {
		return NewPool
	}
	return l.NewExecutor
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

func decodeSafe(ctx context.Context, dec *Decoder, in audio.Input) (wf *audio.Waveform, err error) {
	defer func() {
		if p := recover(); p != nil {
			wf, err = nil, fmt.Errorf("%s: %v: %w", in, p, ErrTaskPanic)
		}
	}()

	return dec.Decode(ctx, in)
}

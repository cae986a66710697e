package benchmark

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"

	"example.com/fuzzy-cruise/core/control"
	"example.com/fuzzy-cruise/core/fuzzy"
)

const (
	minLatency = 1                      // ns
	maxLatency = int64(10 * time.Second) // ns
	sigFigs    = 3
)

// Run performs numInference inferences on each of numGoroutine goroutines
// and returns the merged latency histogram in nanoseconds. If w is not nil,
// the percentile distribution is printed to it.
func Run(log *zap.Logger, e *control.Engine, readings map[string]float64,
	numGoroutine, numInference int, w io.Writer) (*hdrhistogram.Histogram, error) {
	if numGoroutine < 1 || numInference < 1 {
		return nil, fmt.Errorf("invalid benchmark size: %d x %d", numGoroutine, numInference)
	}
	var mu sync.Mutex
	var errs []error
	total := hdrhistogram.New(minLatency, maxLatency, sigFigs)
	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numGoroutine)
	for i := numGoroutine; i > 0; i-- {
		go func() {
			defer wg.Done()
			hg := hdrhistogram.New(minLatency, maxLatency, sigFigs)
			var err error
			<-sg
			for j := numInference; j > 0; j-- {
				t0 := time.Now()
				_, err = e.Infer(readings)
				d := time.Since(t0)
				if err != nil && !errors.Is(err, fuzzy.ErrNoRegion) {
					break
				}
				err = hg.RecordValue(max(d.Nanoseconds(), minLatency))
				if err != nil {
					err = fmt.Errorf("failed to record histogram value: %w", err)
					break
				}
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			total.Merge(hg)
		}()
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	elapsed := time.Since(t0)
	if len(errs) != 0 {
		return nil, errs[0]
	}
	log.Info("benchmark finished",
		zap.Int("goroutines", numGoroutine),
		zap.Int("inferences", numGoroutine*numInference),
		zap.Duration("elapsed", elapsed),
		zap.Duration("p50", time.Duration(total.ValueAtQuantile(50))),
		zap.Duration("p99", time.Duration(total.ValueAtQuantile(99))),
	)
	if w != nil {
		_, err := total.PercentilesPrint(w, 1, 1.0)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}

package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"example.com/fuzzy-cruise/base/timebase"
	"example.com/fuzzy-cruise/core/fuzzy"
	"example.com/fuzzy-cruise/core/sensor"
)

// Run feeds every sample of src through e and passes the decisions to
// handle, starting a new sample at most once per interval. Decisions in
// which no rule fired are passed on with an empty label. Run returns nil at
// the end of src, or the context's error once ctx is done.
func Run(ctx context.Context, log *zap.Logger, clk timebase.LocalClock, e *Engine,
	src sensor.Source, interval time.Duration, handle func(Decision)) error {
	if interval < 0 {
		panic("invalid control loop interval")
	}
	for n := 0; ; n++ {
		err := ctx.Err()
		if err != nil {
			return err
		}
		t0 := clk.Now()
		sample, err := src.Next()
		if err == io.EOF {
			log.Debug("end of samples", zap.Int("count", n))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read sample: %w", err)
		}
		d, err := e.Infer(sample)
		if err != nil && !errors.Is(err, fuzzy.ErrNoRegion) {
			log.Info("inference failed", zap.Int("sample", n), zap.Error(err))
		} else {
			handle(d)
		}
		if interval != 0 {
			clk.Sleep(interval - clk.Now().Sub(t0))
		}
	}
}

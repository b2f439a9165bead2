package pointlearn

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newLimiter(pace time.Duration) *rate.Limiter {
	if pace <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(pace), 1)
}

type loopResult struct {
	steps    int
	stopped  bool // step asked to stop
	canceled bool
}

// loop calls step at most max times, stopping early when step returns true.
// ctx is checked between steps, never inside one.
func loop(ctx context.Context, limiter *rate.Limiter, max int, step func() (bool, error)) (loopResult, error) {
	var lr loopResult
	for lr.steps < max {
		if err := ctx.Err(); err != nil {
			lr.canceled = true
			return lr, err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				lr.canceled = true
				return lr, err
			}
		}
		stop, err := step()
		lr.steps++
		if err != nil {
			return lr, err
		}
		if stop {
			lr.stopped = true
			return lr, nil
		}
	}
	return lr, nil
}

// finish turns a loop outcome into a Result and logs it.
func finish(log *zap.Logger, res Result, lr loopResult, err error, done, capped Status) (Result, error) {
	res.Iterations = lr.steps
	switch {
	case lr.canceled:
		res.Status = Canceled
	case err != nil:
		res.Status = Failed
	case lr.stopped:
		res.Status = done
	default:
		res.Status = capped
	}
	if err != nil {
		log.Warn("run stopped", zap.Stringer("status", res.Status), zap.Int("iterations", res.Iterations), zap.Error(err))
		return res, err
	}
	log.Info("run finished", zap.Stringer("status", res.Status), zap.Int("iterations", res.Iterations))
	return res, nil
}

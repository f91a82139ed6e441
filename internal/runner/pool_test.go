package runner_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/signalnine/schedplot/internal/runner"
	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	var count atomic.Int32
	jobs := make([]runner.Job, 10)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			count.Add(1)
			return nil
		}
	}
	errs := runner.RunPool(context.Background(), 3, jobs)
	assert.Empty(t, errs)
	assert.EqualValues(t, 10, count.Load())
}

func TestPoolWithErrors(t *testing.T) {
	jobs := []runner.Job{
		func(context.Context) error { return nil },
		func(context.Context) error { return fmt.Errorf("fail") },
		func(context.Context) error { return nil },
	}
	errs := runner.RunPool(context.Background(), 2, jobs)
	assert.Len(t, errs, 1)
}

func TestPoolSequentialOrder(t *testing.T) {
	var order []int
	jobs := make([]runner.Job, 5)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			order = append(order, i)
			return nil
		}
	}
	errs := runner.RunPool(context.Background(), 1, jobs)
	assert.Empty(t, errs)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int32
	jobs := []runner.Job{
		func(context.Context) error { count.Add(1); return nil },
		func(context.Context) error { count.Add(1); return nil },
	}
	errs := runner.RunPool(ctx, 1, jobs)
	assert.Zero(t, count.Load())
	assert.True(t, errors.Is(errors.Join(errs...), context.Canceled))
}

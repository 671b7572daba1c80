package lever_test

import (
	"context"
	"testing"
	"time"

	"github.com/alkime/steplever/internal/lever"
	"github.com/stretchr/testify/require"
)

func tr(from, to int) lever.Transition {
	return lever.Transition{From: from, To: to, At: time.Now()}
}

func steps(trs []lever.Transition) []int {
	out := make([]int, len(trs))
	for i, t := range trs {
		out[i] = t.To
	}
	return out
}

func TestTransitionLog_Record(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(10)

	log.Record(tr(0, 1))
	log.Record(tr(1, 2))
	log.Record(tr(2, 0))

	require.Equal(t, 3, log.Count())
	require.Equal(t, []int{1, 2, 0}, steps(log.Recent(3)))
}

func TestTransitionLog_Wraparound(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(3)

	// Five records into a capacity of three keep only the newest three.
	for i := 1; i <= 5; i++ {
		log.Record(tr(i-1, i))
	}

	require.Equal(t, 3, log.Count())
	require.Equal(t, []int{3, 4, 5}, steps(log.Recent(3)))
}

func TestTransitionLog_RecentLessThanAvailable(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(10)
	for i := 1; i <= 6; i++ {
		log.Record(tr(i-1, i))
	}

	require.Equal(t, []int{5, 6}, steps(log.Recent(2)))
}

func TestTransitionLog_RecentMoreThanAvailable(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(10)
	log.Record(tr(0, 1))
	log.Record(tr(1, 2))

	require.Equal(t, []int{1, 2}, steps(log.Recent(10)))
}

func TestTransitionLog_RecentEmpty(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(10)

	require.Nil(t, log.Recent(5))
	require.Equal(t, 0, log.Count())
}

func TestTransitionLog_RecentZeroAndNegative(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(10)
	log.Record(tr(0, 1))

	require.Nil(t, log.Recent(0))
	require.Nil(t, log.Recent(-1))
}

func TestTransitionLog_TinyCapacity(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(0)
	log.Record(tr(0, 1))
	log.Record(tr(1, 2))

	require.Equal(t, 1, log.Count())
	require.Equal(t, []int{2}, steps(log.Recent(5)))
}

func TestTransitionLog_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	log := lever.NewTransitionLog(100)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Writer goroutine
	go func() {
		i := 0
		for {
			select {
			case <-ctx.Done():
				return
			default:
				log.Record(tr(i, i+1))
				i++
			}
		}
	}()

	// Reader goroutine - should not panic or race
	for {
		select {
		case <-ctx.Done():
			return
		default:
			_ = log.Recent(10)
			_ = log.Count()
		}
	}
}

package lever_test

import (
	"testing"

	"github.com/alkime/steplever/internal/lever"
	"github.com/stretchr/testify/require"
)

func TestNewStepTable(t *testing.T) {
	t.Parallel()

	t.Run("two steps span the bounds", func(t *testing.T) {
		t.Parallel()
		table, err := lever.NewStepTable(-90, 90, 2)
		require.NoError(t, err)
		require.Equal(t, []float64{-90, 90}, table.Angles())
	})

	t.Run("three steps include the midpoint", func(t *testing.T) {
		t.Parallel()
		table, err := lever.NewStepTable(0, 180, 3)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 90, 180}, table.Angles())
	})

	t.Run("descending span yields descending table", func(t *testing.T) {
		t.Parallel()
		table, err := lever.NewStepTable(60, -60, 5)
		require.NoError(t, err)
		require.Equal(t, []float64{60, 30, 0, -30, -60}, table.Angles())
	})

	t.Run("rejects fewer than two steps", func(t *testing.T) {
		t.Parallel()
		_, err := lever.NewStepTable(0, 90, 1)
		require.Error(t, err)
		require.ErrorIs(t, err, lever.ErrInvalidConfig)

		_, err = lever.NewStepTable(0, 90, 0)
		require.Error(t, err)
	})
}

func TestStepTableNearest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		min, max float64
		count    int
		angle    float64
		expected int
	}{
		{name: "two steps, positive angle", min: -90, max: 90, count: 2, angle: 10, expected: 1},
		{name: "two steps, negative angle", min: -90, max: 90, count: 2, angle: -10, expected: 0},
		{name: "three steps, near middle", min: 0, max: 180, count: 3, angle: 95, expected: 1},
		{name: "three steps, near top", min: 0, max: 180, count: 3, angle: 140, expected: 2},
		{name: "exact detent", min: 0, max: 180, count: 3, angle: 90, expected: 1},
		{name: "below the span", min: 0, max: 180, count: 3, angle: -400, expected: 0},
		{name: "above the span", min: 0, max: 180, count: 3, angle: 700, expected: 2},
		{name: "tie resolves to lower index", min: 0, max: 90, count: 2, angle: 45, expected: 0},
		{name: "tie between inner detents", min: 0, max: 180, count: 3, angle: 45, expected: 0},
		{name: "tie between upper detents", min: 0, max: 180, count: 3, angle: 135, expected: 1},
		{name: "descending table, high angle", min: 90, max: -90, count: 3, angle: 80, expected: 0},
		{name: "descending table, low angle", min: 90, max: -90, count: 3, angle: -80, expected: 2},
		{name: "descending table tie", min: 90, max: -90, count: 3, angle: 45, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table, err := lever.NewStepTable(tt.min, tt.max, tt.count)
			require.NoError(t, err)
			require.Equal(t, tt.expected, table.Nearest(tt.angle))
		})
	}
}

func TestStepTableRoundTrip(t *testing.T) {
	t.Parallel()

	configs := []struct {
		min, max float64
		count    int
	}{
		{-90, 90, 2},
		{0, 180, 3},
		{60, -60, 5},
		{-33.5, 47.25, 7},
		{0, 1, 99},
	}

	for _, cfg := range configs {
		table, err := lever.NewStepTable(cfg.min, cfg.max, cfg.count)
		require.NoError(t, err)

		// Every detent angle quantizes back to its own index.
		for i := 0; i < table.Len(); i++ {
			require.Equal(t, i, table.Nearest(table.Angle(i)),
				"round trip for step %d of [%v,%v]/%d", i, cfg.min, cfg.max, cfg.count)
		}
	}
}

func TestStepTableAnglesIsACopy(t *testing.T) {
	t.Parallel()

	table, err := lever.NewStepTable(0, 90, 2)
	require.NoError(t, err)

	angles := table.Angles()
	angles[0] = 12345

	require.Equal(t, 0.0, table.Angle(0))
}

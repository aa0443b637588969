package simulation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_ZeroRateMatchesSavings(t *testing.T) {
	svc := NewService(zerolog.Nop())

	trajectory, err := svc.Simulate(0, 1000, 100, 1)
	require.NoError(t, err)

	require.Len(t, trajectory.Invested, 13)
	require.Len(t, trajectory.Saved, 13)
	for i := range trajectory.Invested {
		assert.InDelta(t, trajectory.Saved[i], trajectory.Invested[i], 1e-9)
	}
	assert.InDelta(t, 2200, trajectory.FinalInvested(), 1e-9)
	assert.InDelta(t, 2200, trajectory.FinalSaved(), 1e-9)
}

func TestSimulate_AnnualCompounding(t *testing.T) {
	svc := NewService(zerolog.Nop())

	// No contributions: after one year the balance grows by the full
	// annual rate regardless of the monthly compounding schedule.
	trajectory, err := svc.Simulate(12, 1000, 0, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1120, trajectory.FinalInvested(), 1e-6)
	assert.InDelta(t, 1000, trajectory.FinalSaved(), 1e-9)
}

func TestSimulate_NegativeRateDeclines(t *testing.T) {
	svc := NewService(zerolog.Nop())

	trajectory, err := svc.Simulate(-10, 1000, 0, 2)
	require.NoError(t, err)

	assert.InDelta(t, 1000*0.9*0.9, trajectory.FinalInvested(), 1e-6)
	assert.Less(t, trajectory.FinalInvested(), trajectory.FinalSaved())
}

func TestSimulate_TrajectoryLength(t *testing.T) {
	svc := NewService(zerolog.Nop())

	trajectory, err := svc.Simulate(5, 0, 250, 30)
	require.NoError(t, err)

	assert.Len(t, trajectory.Invested, 30*12+1)
	assert.Len(t, trajectory.Saved, 30*12+1)
	assert.Equal(t, 0.0, trajectory.Invested[0])
	assert.InDelta(t, 250.0*360, trajectory.FinalSaved(), 1e-9)
}

func TestSimulate_MonthOrdering(t *testing.T) {
	svc := NewService(zerolog.Nop())

	// The contribution is credited before growth is applied, so even
	// the first month earns interest on the deposit.
	trajectory, err := svc.Simulate(12, 0, 100, 1)
	require.NoError(t, err)

	assert.Greater(t, trajectory.Invested[1], 100.0)
}

func TestSimulate_InvalidInputs(t *testing.T) {
	svc := NewService(zerolog.Nop())

	_, err := svc.Simulate(5, 1000, 100, 0)
	assert.ErrorContains(t, err, "horizon")

	_, err = svc.Simulate(5, -1, 100, 10)
	assert.ErrorContains(t, err, "initial")

	_, err = svc.Simulate(5, 1000, -100, 10)
	assert.ErrorContains(t, err, "contribution")
}

package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

func testClient() domain.ClientRecord {
	return domain.ClientRecord{
		Name:  "Maria Papadopoulou",
		Phone: "+30 210 1234567",
		Email: "maria@example.com",
		City:  "Athens",
		Age:   42,
	}
}

func testAllocation() domain.Allocation {
	return domain.Allocation{
		Category: domain.RiskMedium,
		Holdings: []domain.Holding{
			{Symbol: "VTI", Weight: 40},
			{Symbol: "LQD", Weight: 40},
			{Symbol: "GLD", Weight: 20},
		},
	}
}

func advanceToStats(t *testing.T, m *Manager) string {
	t.Helper()
	s := m.Create()
	require.NoError(t, m.SetRiskAssessment(s.ID, 150, domain.RiskMedium))
	require.NoError(t, m.SetAllocation(s.ID, testAllocation()))
	require.NoError(t, m.SetStats(s.ID, domain.PortfolioStats{ExpectedReturnPct: 7.5, VolatilityPct: 11.2}))
	return s.ID
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager(zerolog.Nop())

	s := m.Create()
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Nil(t, got.Client)
	assert.Nil(t, got.Score)

	_, err = m.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetClient_Validation(t *testing.T) {
	m := NewManager(zerolog.Nop())
	s := m.Create()

	require.NoError(t, m.SetClient(s.ID, testClient()))

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Maria Papadopoulou", got.Client.Name)

	missing := testClient()
	missing.Email = ""
	assert.ErrorContains(t, m.SetClient(s.ID, missing), "email")

	minor := testClient()
	minor.Age = 17
	assert.ErrorContains(t, m.SetClient(s.ID, minor), "age")

	assert.ErrorIs(t, m.SetClient("nope", testClient()), ErrNotFound)
}

func TestStageGating(t *testing.T) {
	m := NewManager(zerolog.Nop())
	s := m.Create()

	err := m.SetAllocation(s.ID, testAllocation())
	assert.ErrorIs(t, err, ErrNoRiskAssessment)

	require.NoError(t, m.SetRiskAssessment(s.ID, 150, domain.RiskMedium))

	err = m.SetStats(s.ID, domain.PortfolioStats{})
	assert.ErrorIs(t, err, ErrNoAllocation)

	require.NoError(t, m.SetAllocation(s.ID, testAllocation()))

	err = m.SetProjection(s.ID, domain.GrowthTrajectory{})
	assert.ErrorIs(t, err, ErrNoStatistics)
}

func TestSetAllocation_CategoryMismatch(t *testing.T) {
	m := NewManager(zerolog.Nop())
	s := m.Create()
	require.NoError(t, m.SetRiskAssessment(s.ID, 30, domain.RiskHigh))

	err := m.SetAllocation(s.ID, testAllocation())
	assert.ErrorContains(t, err, "does not match")
}

func TestRescoreInvalidatesDownstream(t *testing.T) {
	m := NewManager(zerolog.Nop())
	id := advanceToStats(t, m)
	require.NoError(t, m.SetProjection(id, domain.GrowthTrajectory{
		Invested: []float64{1000, 1100},
		Saved:    []float64{1000, 1050},
	}))

	require.NoError(t, m.SetRiskAssessment(id, 60, domain.RiskHigh))

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Nil(t, got.Allocation)
	assert.Nil(t, got.Stats)
	assert.Nil(t, got.Projection)
	require.NotNil(t, got.Score)
	assert.Equal(t, 60, *got.Score)
	assert.Equal(t, domain.RiskHigh, got.Category)
}

func TestReallocationInvalidatesStatsAndProjection(t *testing.T) {
	m := NewManager(zerolog.Nop())
	id := advanceToStats(t, m)
	require.NoError(t, m.SetProjection(id, domain.GrowthTrajectory{
		Invested: []float64{0, 100},
		Saved:    []float64{0, 100},
	}))

	alloc := testAllocation()
	alloc.Holdings[0].Weight = 50
	alloc.Holdings[1].Weight = 30
	require.NoError(t, m.SetAllocation(id, alloc))

	got, err := m.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got.Allocation)
	assert.Equal(t, 50, got.Allocation.Holdings[0].Weight)
	assert.Nil(t, got.Stats)
	assert.Nil(t, got.Projection)
}

func TestSnapshotIsDetached(t *testing.T) {
	m := NewManager(zerolog.Nop())
	id := advanceToStats(t, m)

	got, err := m.Get(id)
	require.NoError(t, err)

	// Mutating the snapshot's holdings must not leak into the store.
	got.Allocation.Holdings[0].Weight = 99
	again, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 40, again.Allocation.Holdings[0].Weight)
}

func TestDeleteAndCount(t *testing.T) {
	m := NewManager(zerolog.Nop())
	a := m.Create()
	m.Create()
	assert.Equal(t, 2, m.Count())

	m.Delete(a.ID)
	assert.Equal(t, 1, m.Count())

	m.Delete("nope")
	assert.Equal(t, 1, m.Count())
}

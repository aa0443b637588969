// Package session tracks one advisory consultation from client
// registration through risk scoring, allocation, statistics and
// projection. Sessions live in memory only.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

var (
	// ErrNotFound is returned when a session id is unknown or expired.
	ErrNotFound = errors.New("session not found")
	// ErrNoRiskAssessment gates stages that need a scored questionnaire.
	ErrNoRiskAssessment = errors.New("questionnaire has not been scored yet")
	// ErrNoAllocation gates stages that need a resolved allocation.
	ErrNoAllocation = errors.New("allocation has not been resolved yet")
	// ErrNoStatistics gates the projection stage.
	ErrNoStatistics = errors.New("portfolio statistics have not been computed yet")
)

const (
	minClientAge = 18
	maxClientAge = 100
)

// Session is a snapshot of one consultation's state. Later stages are
// nil until reached; changing an earlier stage clears everything
// downstream of it.
type Session struct {
	ID        string
	CreatedAt time.Time

	Client     *domain.ClientRecord
	Score      *int
	Category   domain.RiskCategory
	Allocation *domain.Allocation
	Stats      *domain.PortfolioStats
	Projection *domain.GrowthTrajectory
}

// Manager holds live sessions behind a single lock. Setters always
// store freshly built values, so snapshots handed out by Get stay
// immutable from the caller's point of view.
type Manager struct {
	sessions map[string]*Session
	log      zerolog.Logger
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		log:      log.With().Str("component", "session_manager").Logger(),
	}
}

// Create starts a new empty session and returns its snapshot.
func (m *Manager) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	m.sessions[s.ID] = s

	m.log.Info().Str("session_id", s.ID).Msg("Session created")
	return *s
}

// Get returns a detached snapshot of the session. Mutating the
// snapshot does not affect the stored state.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.clone(), nil
}

func (s *Session) clone() Session {
	out := *s
	if s.Client != nil {
		client := *s.Client
		out.Client = &client
	}
	if s.Score != nil {
		score := *s.Score
		out.Score = &score
	}
	if s.Allocation != nil {
		alloc := *s.Allocation
		alloc.Holdings = append([]domain.Holding(nil), s.Allocation.Holdings...)
		out.Allocation = &alloc
	}
	if s.Stats != nil {
		stats := *s.Stats
		out.Stats = &stats
	}
	if s.Projection != nil {
		projection := domain.GrowthTrajectory{
			Invested: append([]float64(nil), s.Projection.Invested...),
			Saved:    append([]float64(nil), s.Projection.Saved...),
		}
		out.Projection = &projection
	}
	return out
}

// SetClient attaches the client record. All fields are required and
// the age must fall within the accepted range.
func (m *Manager) SetClient(id string, client domain.ClientRecord) error {
	if err := validateClient(client); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	record := client
	s.Client = &record

	m.log.Info().Str("session_id", id).Msg("Client record registered")
	return nil
}

// SetRiskAssessment records the questionnaire outcome and clears the
// allocation, statistics and projection stages.
func (m *Manager) SetRiskAssessment(id string, score int, category domain.RiskCategory) error {
	if !category.Valid() {
		return fmt.Errorf("invalid risk category %q", category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}

	total := score
	s.Score = &total
	s.Category = category
	s.Allocation = nil
	s.Stats = nil
	s.Projection = nil

	m.log.Info().
		Str("session_id", id).
		Int("score", score).
		Str("category", string(category)).
		Msg("Risk assessment recorded")
	return nil
}

// SetAllocation stores the allocation and clears the statistics and
// projection stages. The session must already carry a risk assessment
// matching the allocation's category.
func (m *Manager) SetAllocation(id string, alloc domain.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.Score == nil {
		return ErrNoRiskAssessment
	}
	if alloc.Category != s.Category {
		return fmt.Errorf("allocation category %s does not match assessed category %s", alloc.Category, s.Category)
	}

	stored := alloc
	stored.Holdings = append([]domain.Holding(nil), alloc.Holdings...)
	s.Allocation = &stored
	s.Stats = nil
	s.Projection = nil

	m.log.Info().Str("session_id", id).Str("category", string(alloc.Category)).Msg("Allocation stored")
	return nil
}

// SetStats stores computed portfolio statistics and clears any
// existing projection.
func (m *Manager) SetStats(id string, stats domain.PortfolioStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.Allocation == nil {
		return ErrNoAllocation
	}

	stored := stats
	s.Stats = &stored
	s.Projection = nil

	m.log.Info().
		Str("session_id", id).
		Float64("expected_return_pct", stats.ExpectedReturnPct).
		Float64("volatility_pct", stats.VolatilityPct).
		Msg("Portfolio statistics stored")
	return nil
}

// SetProjection stores a growth projection. Statistics must already
// have been computed, since the projection is driven by the
// portfolio's expected return.
func (m *Manager) SetProjection(id string, trajectory domain.GrowthTrajectory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.Stats == nil {
		return ErrNoStatistics
	}

	stored := domain.GrowthTrajectory{
		Invested: append([]float64(nil), trajectory.Invested...),
		Saved:    append([]float64(nil), trajectory.Saved...),
	}
	s.Projection = &stored

	m.log.Info().
		Str("session_id", id).
		Float64("final_invested", stored.FinalInvested()).
		Msg("Growth projection stored")
	return nil
}

// Delete removes a session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func validateClient(client domain.ClientRecord) error {
	if client.Name == "" {
		return fmt.Errorf("client name is required")
	}
	if client.Phone == "" {
		return fmt.Errorf("client phone is required")
	}
	if client.Email == "" {
		return fmt.Errorf("client email is required")
	}
	if client.City == "" {
		return fmt.Errorf("client city is required")
	}
	if client.Age < minClientAge || client.Age > maxClientAge {
		return fmt.Errorf("client age must be between %d and %d, got %d", minClientAge, maxClientAge, client.Age)
	}
	return nil
}

package domain

import "fmt"

// IncompleteResponseError indicates the questionnaire was scored with
// at least one question unanswered or answered out of scale.
// Recoverable: the caller should re-prompt the client.
type IncompleteResponseError struct {
	Section  int // section id of the first offending question, 0 if unknown
	Question int // 1-based question number within the section
	Missing  int // total number of missing or invalid answers
}

func (e IncompleteResponseError) Error() string {
	if e.Section > 0 {
		return fmt.Sprintf("incomplete questionnaire: %d answers missing or invalid (first at section %d, question %d)", e.Missing, e.Section, e.Question)
	}
	return fmt.Sprintf("incomplete questionnaire: %d answers missing or invalid", e.Missing)
}

// AllocationSumError indicates user weight overrides do not sum to
// exactly 100 percent. Recoverable: the caller should re-prompt.
type AllocationSumError struct {
	Sum int
}

func (e AllocationSumError) Error() string {
	return fmt.Sprintf("allocation weights must sum to 100, got %d", e.Sum)
}

// InsufficientDataError indicates the aligned price history has too
// few observations to compute returns.
type InsufficientDataError struct {
	Points int
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient price data: %d aligned observations, need at least 2", e.Points)
}

// RetrievalKind classifies price-retrieval failures.
type RetrievalKind string

const (
	// RetrievalNotFound - the provider has no data for the symbol/range
	RetrievalNotFound RetrievalKind = "NOT_FOUND"
	// RetrievalNetworkFailure - the provider could not be reached or errored
	RetrievalNetworkFailure RetrievalKind = "NETWORK_FAILURE"
)

// DataRetrievalError wraps a failure from the external price-data
// collaborator. An empty result set is NotFound, never a silent
// empty series.
type DataRetrievalError struct {
	Kind   RetrievalKind
	Symbol string
	Err    error
}

func (e DataRetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price retrieval failed for %s (%s): %v", e.Symbol, e.Kind, e.Err)
	}
	return fmt.Sprintf("price retrieval failed for %s (%s)", e.Symbol, e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e DataRetrievalError) Unwrap() error {
	return e.Err
}

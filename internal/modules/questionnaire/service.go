// Package questionnaire implements risk-profile scoring over the
// static question bank.
package questionnaire

import (
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

// Answer scale bounds.
const (
	MinAnswer = 1
	MaxAnswer = 4
)

// Score thresholds. The bank has 67 questions on a 1-4 scale, so the
// total is always in [67, 268]. The boundary comparisons reproduce the
// original advisory form exactly: 67 is still HIGH, 267 is still
// MEDIUM.
const (
	HighMaxScore   = 67
	MediumMaxScore = 267
)

// ResponseSet maps section id -> 1-based question number -> answer.
type ResponseSet map[int]map[int]int

// Service scores completed questionnaires and classifies the result.
type Service struct {
	sections []Section
	log      zerolog.Logger
}

// NewService creates a questionnaire service over the static bank.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		sections: Bank(),
		log:      log.With().Str("service", "questionnaire").Logger(),
	}
}

// Sections returns the question bank.
func (s *Service) Sections() []Section {
	return s.sections
}

// TotalQuestions returns the number of questions across all sections.
func (s *Service) TotalQuestions() int {
	total := 0
	for _, sec := range s.sections {
		total += len(sec.Questions)
	}
	return total
}

// Score sums every answer across all sections exactly once. It fails
// with domain.IncompleteResponseError when any question is missing an
// answer or an answer falls outside the 1-4 scale.
func (s *Service) Score(responses ResponseSet) (int, error) {
	total := 0
	missing := 0
	firstSection := 0
	firstQuestion := 0

	for _, sec := range s.sections {
		answers := responses[sec.ID]
		for q := 1; q <= len(sec.Questions); q++ {
			answer, ok := answers[q]
			if !ok || answer < MinAnswer || answer > MaxAnswer {
				missing++
				if firstSection == 0 {
					firstSection = sec.ID
					firstQuestion = q
				}
				continue
			}
			total += answer
		}
	}

	if missing > 0 {
		return 0, domain.IncompleteResponseError{
			Section:  firstSection,
			Question: firstQuestion,
			Missing:  missing,
		}
	}

	s.log.Debug().Int("score", total).Msg("Scored questionnaire")
	return total, nil
}

// Classify maps a total score to a risk category using the fixed
// thresholds.
func Classify(score int) domain.RiskCategory {
	switch {
	case score <= HighMaxScore:
		return domain.RiskHigh
	case score <= MediumMaxScore:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

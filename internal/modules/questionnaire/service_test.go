package questionnaire

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

// completeResponses answers every question in the bank with the given
// value.
func completeResponses(answer int) ResponseSet {
	responses := make(ResponseSet)
	for _, sec := range Bank() {
		answers := make(map[int]int, len(sec.Questions))
		for q := 1; q <= len(sec.Questions); q++ {
			answers[q] = answer
		}
		responses[sec.ID] = answers
	}
	return responses
}

func TestBankShape(t *testing.T) {
	sections := Bank()
	require.Len(t, sections, 7)

	lengths := []int{10, 10, 10, 10, 10, 10, 7}
	total := 0
	for i, sec := range sections {
		assert.Equal(t, i+1, sec.ID)
		assert.Len(t, sec.Questions, lengths[i])
		total += len(sec.Questions)
	}
	assert.Equal(t, 67, total)
}

func TestScore_AllMinimum(t *testing.T) {
	svc := NewService(zerolog.Nop())

	score, err := svc.Score(completeResponses(1))
	require.NoError(t, err)
	assert.Equal(t, 67, score)
}

func TestScore_AllMaximum(t *testing.T) {
	svc := NewService(zerolog.Nop())

	score, err := svc.Score(completeResponses(4))
	require.NoError(t, err)
	assert.Equal(t, 268, score)
}

func TestScore_SumsEveryAnswerOnce(t *testing.T) {
	svc := NewService(zerolog.Nop())

	responses := completeResponses(2)
	responses[3][5] = 4 // bump one answer by 2

	score, err := svc.Score(responses)
	require.NoError(t, err)
	assert.Equal(t, 67*2+2, score)
}

func TestScore_MissingAnswer(t *testing.T) {
	svc := NewService(zerolog.Nop())

	responses := completeResponses(2)
	delete(responses[4], 7)

	_, err := svc.Score(responses)
	require.Error(t, err)

	var ire domain.IncompleteResponseError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, 1, ire.Missing)
	assert.Equal(t, 4, ire.Section)
	assert.Equal(t, 7, ire.Question)
}

func TestScore_MissingSection(t *testing.T) {
	svc := NewService(zerolog.Nop())

	responses := completeResponses(2)
	delete(responses, 7)

	_, err := svc.Score(responses)

	var ire domain.IncompleteResponseError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, 7, ire.Missing)
	assert.Equal(t, 7, ire.Section)
	assert.Equal(t, 1, ire.Question)
}

func TestScore_OutOfScaleAnswer(t *testing.T) {
	svc := NewService(zerolog.Nop())

	responses := completeResponses(2)
	responses[1][1] = 5

	_, err := svc.Score(responses)

	var ire domain.IncompleteResponseError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, 1, ire.Missing)

	responses[1][1] = 0
	_, err = svc.Score(responses)
	require.True(t, errors.As(err, &ire))
}

func TestClassify_Boundaries(t *testing.T) {
	// Boundary values land in the lower bucket, matching the original
	// comparison operators.
	assert.Equal(t, domain.RiskHigh, Classify(67))
	assert.Equal(t, domain.RiskMedium, Classify(68))
	assert.Equal(t, domain.RiskMedium, Classify(267))
	assert.Equal(t, domain.RiskLow, Classify(268))
}

func TestScoreRange(t *testing.T) {
	svc := NewService(zerolog.Nop())

	for answer := MinAnswer; answer <= MaxAnswer; answer++ {
		score, err := svc.Score(completeResponses(answer))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 67)
		assert.LessOrEqual(t, score, 268)
	}
}

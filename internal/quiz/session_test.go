package quiz

import (
	"testing"

	"DrishtiGPT-Learning-Backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(question, correct string, options ...string) model.QuestionRecord {
	rec := model.QuestionRecord{Question: question, CorrectAnswer: correct, Explanation: "because"}
	copy(rec.Options[:], options)
	return rec
}

func loadedSession(t *testing.T, questions ...model.QuestionRecord) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.BeginFetch())
	require.NoError(t, s.Load(questions))
	require.Equal(t, StateLoaded, s.State())
	return s
}

// TestScoringMixedAnswers verifies correct, incorrect and unanswered questions are graded.
func TestScoringMixedAnswers(t *testing.T) {
	s := loadedSession(t,
		record("q1", "Option 1", "a", "b", "c", "d"),
		record("q2", "Option 2", "a", "b", "c", "d"),
		record("q3", "Option 3", "a", "b", "c", "d"),
		record("q4", "d", "a", "b", "c", "d"),
	)
	require.NoError(t, s.Select(0, "a"))
	require.NoError(t, s.Select(1, "c"))
	require.NoError(t, s.Select(3, "d"))

	score, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 2, score.Correct)
	assert.Equal(t, 4, score.Total)
	assert.Equal(t, 50.0, score.Percentage)
	assert.Equal(t, "50.0", score.PercentageText())

	assert.True(t, score.Feedback[0].IsCorrect)
	assert.False(t, score.Feedback[1].IsCorrect)
	assert.Equal(t, Unanswered, score.Feedback[2].Selected)
	assert.False(t, score.Feedback[2].IsCorrect)
	assert.Equal(t, "c", score.Feedback[2].CorrectAnswer)
}

// TestCorrectAnswerLabelIndirection verifies "Option 3" resolves through the options.
func TestCorrectAnswerLabelIndirection(t *testing.T) {
	s := loadedSession(t, record("Capital of France?", "Option 3", "Berlin", "Madrid", "Paris", "Rome"))
	require.NoError(t, s.Select(0, "Paris"))

	score, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
}

// TestFetchWhileSubmittedClearsSelections verifies a new fetch resets a submitted quiz.
func TestFetchWhileSubmittedClearsSelections(t *testing.T) {
	s := loadedSession(t, record("q", "Option 1", "a", "b", "c", "d"))
	require.NoError(t, s.Select(0, "a"))
	_, err := s.Submit()
	require.NoError(t, err)
	require.True(t, s.Submitted())

	require.NoError(t, s.BeginFetch())
	assert.False(t, s.Submitted())
	assert.Equal(t, Unanswered, s.Selected(0))
	_, ok := s.Score()
	assert.False(t, ok)

	require.NoError(t, s.Load([]model.QuestionRecord{record("next", "Option 2", "a", "b", "c", "d")}))
	assert.Equal(t, Unanswered, s.Selected(0))
	assert.Equal(t, "next", s.Questions()[0].Question)
}

// TestRefetchWhileLoadedDiscardsSelections verifies the accepted lossy re-fetch.
func TestRefetchWhileLoadedDiscardsSelections(t *testing.T) {
	s := loadedSession(t, record("q", "Option 1", "a", "b", "c", "d"))
	require.NoError(t, s.Select(0, "b"))

	require.NoError(t, s.BeginFetch())
	assert.Equal(t, StateFetching, s.State())
	assert.Empty(t, s.Questions())

	s.FailFetch()
	assert.Equal(t, StateEmpty, s.State())
}

// TestSelectOnlyTouchesOneQuestion verifies selections are independent and changeable.
func TestSelectOnlyTouchesOneQuestion(t *testing.T) {
	s := loadedSession(t,
		record("q1", "Option 1", "a", "b", "c", "d"),
		record("q2", "Option 1", "a", "b", "c", "d"),
	)
	require.NoError(t, s.Select(0, "a"))
	require.NoError(t, s.Select(1, "b"))
	require.NoError(t, s.Select(0, " c "))

	assert.Equal(t, "c", s.Selected(0))
	assert.Equal(t, "b", s.Selected(1))

	require.NoError(t, s.Select(1, Unanswered))
	assert.Equal(t, Unanswered, s.Selected(1))
}

// TestSelectValidation verifies bad indices and foreign options are refused.
func TestSelectValidation(t *testing.T) {
	s := loadedSession(t, record("q", "Option 1", "a", "b", "c", "d"))
	assert.ErrorIs(t, s.Select(1, "a"), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Select(-1, "a"), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Select(0, "z"), ErrUnknownOption)
}

// TestInvalidTransitions verifies actions outside their state are rejected.
func TestInvalidTransitions(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Select(0, "a"), ErrInvalidTransition)
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)

	require.NoError(t, s.BeginFetch())
	assert.ErrorIs(t, s.BeginFetch(), ErrFetchInProgress)
	assert.ErrorIs(t, s.Load(nil), ErrEmpty)
	assert.Equal(t, StateEmpty, s.State())

	s = loadedSession(t, record("q", "Option 1", "a", "b", "c", "d"))
	assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)
	_, err = s.Submit()
	require.NoError(t, err)
	assert.ErrorIs(t, s.Select(0, "a"), ErrInvalidTransition)
	_, err = s.Submit()
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StateSubmitted, te.From)

	require.NoError(t, s.Reset())
	assert.Equal(t, StateEmpty, s.State())
}

// TestEndToEndQuiz verifies parse, select and submit of the sample payload.
func TestEndToEndQuiz(t *testing.T) {
	raw := `["{\"Question\": \"2+2?\", \"Option 1\": \"3\", \"Option 2\": \"4\", \"Option 3\": \"5\", \"Option 4\": \"6\", \"Correct Answer\": \"Option 2\", \"Explanation\": \"Basic arithmetic\"}"]`
	res, err := Parse(raw)
	require.NoError(t, err)

	s := loadedSession(t, res.Questions...)
	require.NoError(t, s.Select(0, "4"))
	score, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
	assert.Equal(t, 1, score.Total)
	assert.Equal(t, "100.0", score.PercentageText())
}

// TestGradeRounding verifies the one-decimal rendering and the empty quiz.
func TestGradeRounding(t *testing.T) {
	qs := []model.QuestionRecord{
		record("q1", "Option 1", "a", "b", "c", "d"),
		record("q2", "Option 1", "a", "b", "c", "d"),
		record("q3", "Option 1", "a", "b", "c", "d"),
	}
	assert.Equal(t, "33.3", Grade(qs, map[int]string{0: "a"}).PercentageText())
	assert.Equal(t, "0.0", Grade(nil, nil).PercentageText())
}

// TestViewHidesAnswersUntilSubmitted verifies the snapshot carries no score before submit.
func TestViewHidesAnswersUntilSubmitted(t *testing.T) {
	s := loadedSession(t, record("q", "Option 2", "a", "b", "c", "d"))
	require.NoError(t, s.Select(0, "b"))

	v := s.View()
	assert.Equal(t, StateLoaded, v.State)
	assert.Nil(t, v.Score)
	assert.Equal(t, "b", v.Questions[0].Selected)

	_, err := s.Submit()
	require.NoError(t, err)
	v = s.View()
	require.NotNil(t, v.Score)
	assert.Equal(t, 1, v.Score.Correct)
}

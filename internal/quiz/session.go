package quiz

import (
	"strconv"
	"strings"

	"DrishtiGPT-Learning-Backend/internal/model"

	"golang.org/x/text/unicode/norm"
)

type State string

const (
	StateEmpty     State = "empty"
	StateFetching  State = "fetching"
	StateLoaded    State = "loaded"
	StateSubmitted State = "submitted"
)

// Unanswered is the selection value of a question the learner has not answered.
const Unanswered = ""

// Session tracks one quiz: its questions, the learner's selections and whether it has
// been submitted. It belongs to a single learner session and is not safe for
// concurrent use.
type Session struct {
	state     State
	questions []model.QuestionRecord
	selected  map[int]string
	score     *Score
}

func NewSession() *Session {
	return &Session{state: StateEmpty, selected: make(map[int]string)}
}

func (s *Session) State() State { return s.state }

func (s *Session) Submitted() bool { return s.state == StateSubmitted }

func (s *Session) Questions() []model.QuestionRecord {
	out := make([]model.QuestionRecord, len(s.questions))
	copy(out, s.questions)
	return out
}

// Selected returns the option chosen for question i, or Unanswered.
func (s *Session) Selected(i int) string {
	return s.selected[i]
}

// BeginFetch starts loading a new quiz. Whatever was there before, answered or not,
// is discarded.
func (s *Session) BeginFetch() error {
	if s.state == StateFetching {
		return ErrFetchInProgress
	}
	s.clear()
	s.state = StateFetching
	return nil
}

// Load installs freshly parsed questions and resets every selection.
func (s *Session) Load(questions []model.QuestionRecord) error {
	if s.state != StateFetching && s.state != StateEmpty {
		return &TransitionError{From: s.state, Action: "load questions"}
	}
	if len(questions) == 0 {
		s.clear()
		return ErrEmpty
	}
	s.clear()
	s.questions = append(s.questions, questions...)
	s.state = StateLoaded
	return nil
}

// FailFetch abandons a fetch; the quiz goes back to empty.
func (s *Session) FailFetch() {
	s.clear()
}

// Select records option as the answer to question i. Passing Unanswered clears it.
func (s *Session) Select(i int, option string) error {
	if s.state != StateLoaded {
		return &TransitionError{From: s.state, Action: "select an answer"}
	}
	if i < 0 || i >= len(s.questions) {
		return ErrIndexOutOfRange
	}
	if option == Unanswered {
		delete(s.selected, i)
		return nil
	}
	for _, opt := range s.questions[i].Options {
		if sameAnswer(opt, option) {
			s.selected[i] = opt
			return nil
		}
	}
	return ErrUnknownOption
}

// Submit freezes the selections and scores them.
func (s *Session) Submit() (Score, error) {
	if s.state != StateLoaded {
		return Score{}, &TransitionError{From: s.state, Action: "submit"}
	}
	score := Grade(s.questions, s.selected)
	s.score = &score
	s.state = StateSubmitted
	return score, nil
}

// Score returns the result of the last submission, if the quiz is submitted.
func (s *Session) Score() (Score, bool) {
	if s.state != StateSubmitted || s.score == nil {
		return Score{}, false
	}
	return *s.score, true
}

// Reset is the "try another quiz" action.
func (s *Session) Reset() error {
	if s.state != StateSubmitted {
		return &TransitionError{From: s.state, Action: "reset"}
	}
	s.clear()
	return nil
}

func (s *Session) clear() {
	s.state = StateEmpty
	s.questions = nil
	s.selected = make(map[int]string)
	s.score = nil
}

// Score is the graded outcome of a submitted quiz.
type Score struct {
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
	Feedback   []Feedback `json:"feedback"`
}

type Feedback struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	IsCorrect     bool   `json:"is_correct"`
}

// PercentageText renders the percentage with one decimal, e.g. "66.7".
func (s Score) PercentageText() string {
	return strconv.FormatFloat(s.Percentage, 'f', 1, 64)
}

// Grade scores selections against the resolved correct answers. Unanswered questions
// count as incorrect.
func Grade(questions []model.QuestionRecord, selected map[int]string) Score {
	score := Score{Total: len(questions), Feedback: make([]Feedback, len(questions))}
	for i, q := range questions {
		correct := q.ResolvedAnswer()
		choice := selected[i]
		ok := choice != Unanswered && sameAnswer(choice, correct)
		if ok {
			score.Correct++
		}
		score.Feedback[i] = Feedback{
			Index:         i,
			Question:      q.Question,
			Selected:      choice,
			CorrectAnswer: correct,
			Explanation:   q.Explanation,
			IsCorrect:     ok,
		}
	}
	if score.Total > 0 {
		score.Percentage = float64(score.Correct) / float64(score.Total) * 100
	}
	return score
}

func sameAnswer(a, b string) bool {
	return norm.NFC.String(strings.TrimSpace(a)) == norm.NFC.String(strings.TrimSpace(b))
}

// View is a read-only snapshot of a session that never exposes the correct answers
// before submission.
type View struct {
	State     State          `json:"state"`
	Questions []QuestionView `json:"questions"`
	Score     *Score         `json:"score,omitempty"`
}

type QuestionView struct {
	Index    int                       `json:"index"`
	Question string                    `json:"question"`
	Options  [model.OptionCount]string `json:"options"`
	Selected string                    `json:"selected"`
}

func (s *Session) View() View {
	v := View{State: s.state, Questions: make([]QuestionView, len(s.questions))}
	for i, q := range s.questions {
		v.Questions[i] = QuestionView{Index: i, Question: q.Question, Options: q.Options, Selected: s.selected[i]}
	}
	if score, ok := s.Score(); ok {
		v.Score = &score
	}
	return v
}

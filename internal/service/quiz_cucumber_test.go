//go:build cucumber

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"DrishtiGPT-Learning-Backend/internal/client"
	"DrishtiGPT-Learning-Backend/internal/logger"
	"DrishtiGPT-Learning-Backend/internal/model"
	"DrishtiGPT-Learning-Backend/internal/quiz"
	"DrishtiGPT-Learning-Backend/internal/repository"

	"github.com/cucumber/godog"
)

// TestQuizFeatures executes the quiz feature scenarios via godog.
func TestQuizFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "quiz.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires step definitions for the quiz feature.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizState{}
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		state.close()
		return ctx, nil
	})

	ctx.Step(`^the chat API answers quiz requests with:$`, state.chatAnswers)
	ctx.Step(`^the chat API fails with status (\d+) and body:$`, state.chatFails)
	ctx.Step(`^the learner starts a quiz for video "([^"]+)"$`, state.startQuiz)
	ctx.Step(`^the quiz has (\d+) questions?$`, state.quizHasQuestions)
	ctx.Step(`^the learner selects "([^"]+)" for question (\d+)$`, state.selectAnswer)
	ctx.Step(`^the learner submits the quiz$`, state.submit)
	ctx.Step(`^the score is (\d+) out of (\d+) at "([^"]+)" percent$`, state.scoreIs)
	ctx.Step(`^the error mentions "([^"]+)"$`, state.errorMentions)
	ctx.Step(`^the quiz state is "([^"]+)"$`, state.quizStateIs)
}

// quizState holds scenario state: a fake chat API, the service and one learner session.
type quizState struct {
	server  *httptest.Server
	svc     *AssistantService
	session *repository.SessionContext
	load    QuizLoad
	score   quiz.Score
	lastErr error
}

func (s *quizState) close() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *quizState) serve(status int, body string) error {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(model.ChatResponse{Answer: body})
			return
		}
		_, _ = w.Write([]byte(body))
	}))

	log := logger.Discard()
	chat := client.NewChatApiClient(s.server.URL, "test-key", "abc-123", 5, log)
	videos, err := repository.NewVideoRepository("", log)
	if err != nil {
		return err
	}
	s.svc = NewAssistantService(chat, videos, "", log)
	s.session, _ = repository.NewSessionRepository(time.Hour, log).GetOrCreate("")
	return nil
}

func (s *quizState) chatAnswers(doc *godog.DocString) error {
	return s.serve(http.StatusOK, doc.Content)
}

func (s *quizState) chatFails(status int, doc *godog.DocString) error {
	return s.serve(status, doc.Content)
}

func (s *quizState) startQuiz(videoID string) error {
	s.load, s.lastErr = s.svc.StartQuiz(context.Background(), s.session, videoID)
	return nil
}

func (s *quizState) quizHasQuestions(n int) error {
	if s.lastErr != nil {
		return fmt.Errorf("quiz failed to load: %w", s.lastErr)
	}
	if got := len(s.load.View.Questions); got != n {
		return fmt.Errorf("expected %d questions, got %d", n, got)
	}
	return nil
}

func (s *quizState) selectAnswer(option string, question int) error {
	_, err := s.svc.SelectAnswer(s.session, question-1, option)
	return err
}

func (s *quizState) submit() error {
	score, err := s.svc.SubmitQuiz(s.session)
	s.score = score
	return err
}

func (s *quizState) scoreIs(correct, total int, percent string) error {
	if s.score.Correct != correct || s.score.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", correct, total, s.score.Correct, s.score.Total)
	}
	if got := s.score.PercentageText(); got != percent {
		return fmt.Errorf("expected %s%%, got %s%%", percent, got)
	}
	return nil
}

func (s *quizState) errorMentions(text string) error {
	if s.lastErr == nil {
		return fmt.Errorf("expected an error mentioning %q, got none", text)
	}
	if !strings.Contains(s.lastErr.Error(), text) {
		return fmt.Errorf("error %q does not mention %q", s.lastErr.Error(), text)
	}
	return nil
}

func (s *quizState) quizStateIs(want string) error {
	if got := s.svc.QuizView(s.session).State; string(got) != want {
		return fmt.Errorf("expected quiz state %q, got %q", want, got)
	}
	return nil
}

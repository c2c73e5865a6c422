package service

import (
	"context"
	"fmt"
	"strings"

	"DrishtiGPT-Learning-Backend/internal/client"
	"DrishtiGPT-Learning-Backend/internal/model"
	"DrishtiGPT-Learning-Backend/internal/quiz"
	"DrishtiGPT-Learning-Backend/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// AssistantService runs the three learner actions against the chat API and keeps the
// per-session quiz state in step with them.
type AssistantService struct {
	chat      ChatClient
	videos    VideoCatalog
	widgetURL string
	summaries singleflight.Group
	log       *logrus.Entry
}

func NewAssistantService(chat ChatClient, videos VideoCatalog, widgetURL string, logger *logrus.Logger) *AssistantService {
	return &AssistantService{
		chat:      chat,
		videos:    videos,
		widgetURL: widgetURL,
		log:       logger.WithField("component", "assistant"),
	}
}

type QuizLoad struct {
	View      quiz.View     `json:"quiz"`
	Malformed int           `json:"malformed_fragments"`
	Strategy  quiz.Strategy `json:"strategy"`
}

type DoubtResult struct {
	VideoID   string `json:"video_id"`
	WidgetURL string `json:"widget_url"`
	Answer    string `json:"answer,omitempty"`
}

// SessionSnapshot is what the page shows for one session.
type SessionSnapshot struct {
	VideoID     string
	LastSummary string
	Quiz        quiz.View
}

func (s *AssistantService) Videos() []model.Video {
	return s.videos.List()
}

func (s *AssistantService) WidgetURL() string {
	return s.widgetURL
}

func (s *AssistantService) Snapshot(sc *repository.SessionContext) SessionSnapshot {
	sc.Lock()
	defer sc.Unlock()
	return SessionSnapshot{VideoID: sc.VideoID, LastSummary: sc.LastSummary, Quiz: sc.Quiz.View()}
}

func (s *AssistantService) selectVideo(sc *repository.SessionContext, videoID string) error {
	if _, err := s.videos.Find(videoID); err != nil {
		return err
	}
	sc.Lock()
	sc.VideoID = videoID
	sc.Unlock()
	return nil
}

// Summary asks for a summary of the video. Identical requests in flight at the same
// time share one outbound call.
func (s *AssistantService) Summary(ctx context.Context, sc *repository.SessionContext, videoID, query string) (string, error) {
	if err := s.selectVideo(sc, videoID); err != nil {
		return "", err
	}

	// The shared call outlives any single caller; the chat client timeout bounds it.
	sharedCtx := context.WithoutCancel(ctx)
	key := videoID + "\x00" + strings.TrimSpace(query)
	ch := s.summaries.DoChan(key, func() (any, error) {
		answer, err := s.chat.Request(sharedCtx, videoID, model.RequestSummary, query)
		if err != nil {
			return "", err
		}
		return CleanAnswer(answer), nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		s.log.WithField("video_id", videoID).Debug("[Summary] caller went away before the answer arrived")
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.log.WithError(res.Err).WithField("video_id", videoID).Warn("[Summary] request failed")
		return "", res.Err
	}
	summary := res.Val.(string)
	if res.Shared {
		s.log.WithField("video_id", videoID).Debug("[Summary] shared an in-flight request")
	}

	sc.Lock()
	sc.LastSummary = summary
	sc.Unlock()
	return summary, nil
}

// StartQuiz fetches and parses a new quiz. Any previous quiz in the session is
// discarded. The session is not locked during the outbound call; the fetching state
// turns a second concurrent StartQuiz into ErrFetchInProgress.
func (s *AssistantService) StartQuiz(ctx context.Context, sc *repository.SessionContext, videoID string) (QuizLoad, error) {
	if err := s.selectVideo(sc, videoID); err != nil {
		return QuizLoad{}, err
	}

	sc.Lock()
	err := sc.Quiz.BeginFetch()
	sc.Unlock()
	if err != nil {
		return QuizLoad{}, err
	}

	log := s.log.WithFields(logrus.Fields{"session_id": sc.ID, "video_id": videoID})
	raw, err := s.chat.Request(ctx, videoID, model.RequestQuiz, client.DefaultQuery)
	if err != nil {
		log.WithError(err).Warn("[Quiz] fetch failed")
		s.failFetch(sc)
		return QuizLoad{}, err
	}

	res, err := quiz.Parse(CleanAnswer(raw))
	for _, m := range res.Malformed {
		log.Warnf("[Quiz] skipped %v", m)
	}
	if err != nil {
		log.WithError(err).Warnf("[Quiz] no usable questions in %d-byte payload", len(raw))
		s.failFetch(sc)
		return QuizLoad{}, err
	}
	for i, q := range res.Questions {
		if !quiz.AnswerResolves(q) {
			log.Warnf("[Quiz] question %d: correct answer %q matches no option", i+1, q.CorrectAnswer)
		}
		if len(q.Missing) > 0 {
			log.Warnf("[Quiz] question %d: placeholders used for %s", i+1, strings.Join(q.Missing, ", "))
		}
	}

	sc.Lock()
	defer sc.Unlock()
	if err := sc.Quiz.Load(res.Questions); err != nil {
		return QuizLoad{}, fmt.Errorf("load quiz: %w", err)
	}
	log.Infof("[Quiz] loaded %d questions via %s (%d fragments skipped)", len(res.Questions), res.Strategy, len(res.Malformed))
	return QuizLoad{View: sc.Quiz.View(), Malformed: len(res.Malformed), Strategy: res.Strategy}, nil
}

func (s *AssistantService) failFetch(sc *repository.SessionContext) {
	sc.Lock()
	sc.Quiz.FailFetch()
	sc.Unlock()
}

func (s *AssistantService) QuizView(sc *repository.SessionContext) quiz.View {
	sc.Lock()
	defer sc.Unlock()
	return sc.Quiz.View()
}

func (s *AssistantService) SelectAnswer(sc *repository.SessionContext, index int, option string) (quiz.View, error) {
	sc.Lock()
	defer sc.Unlock()
	if err := sc.Quiz.Select(index, option); err != nil {
		return quiz.View{}, err
	}
	return sc.Quiz.View(), nil
}

func (s *AssistantService) SubmitQuiz(sc *repository.SessionContext) (quiz.Score, error) {
	sc.Lock()
	defer sc.Unlock()
	score, err := sc.Quiz.Submit()
	if err != nil {
		return quiz.Score{}, err
	}
	s.log.WithField("session_id", sc.ID).Infof("[Quiz] submitted: %d/%d (%s%%)", score.Correct, score.Total, score.PercentageText())
	return score, nil
}

func (s *AssistantService) ResetQuiz(sc *repository.SessionContext) (quiz.View, error) {
	sc.Lock()
	defer sc.Unlock()
	if err := sc.Quiz.Reset(); err != nil {
		return quiz.View{}, err
	}
	return sc.Quiz.View(), nil
}

// AskDoubt hands the learner the chat widget for the video. A non-empty query is also
// sent to the chat API and its answer returned alongside.
func (s *AssistantService) AskDoubt(ctx context.Context, sc *repository.SessionContext, videoID, query string) (DoubtResult, error) {
	if err := s.selectVideo(sc, videoID); err != nil {
		return DoubtResult{}, err
	}
	result := DoubtResult{VideoID: videoID, WidgetURL: s.widgetURL}
	if strings.TrimSpace(query) == "" {
		return result, nil
	}
	answer, err := s.chat.Request(ctx, videoID, model.RequestAskDoubt, query)
	if err != nil {
		s.log.WithError(err).WithField("video_id", videoID).Warn("[Doubt] request failed")
		return result, err
	}
	result.Answer = CleanAnswer(answer)
	return result, nil
}

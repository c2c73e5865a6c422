package model

import "strings"

type RequestType string

const (
	RequestSummary  RequestType = "summary"
	RequestQuiz     RequestType = "quiz"
	RequestAskDoubt RequestType = "doubt"
)

func (t RequestType) Valid() bool {
	switch t {
	case RequestSummary, RequestQuiz, RequestAskDoubt:
		return true
	}
	return false
}

type ChatRequest struct {
	Query          string     `json:"query"`
	Inputs         ChatInputs `json:"inputs"`
	ResponseMode   string     `json:"response_mode"`
	ConversationID string     `json:"conversation_id"`
	User           string     `json:"user"`
}

type ChatInputs struct {
	VideoID     string      `json:"video_id"`
	RequestType RequestType `json:"request_type"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Video struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	EmbedURL string `yaml:"embed_url" json:"embed_url,omitempty"`
}

const OptionCount = 4

// QuestionRecord is one parsed quiz question. It is never mutated after parsing.
type QuestionRecord struct {
	Question      string              `json:"question"`
	Options       [OptionCount]string `json:"options"`
	CorrectAnswer string              `json:"-"`
	Explanation   string              `json:"-"`
	// Missing lists keys that were absent from the payload and replaced by placeholders.
	Missing []string `json:"-"`
}

// OptionLabel returns the payload key of the option at zero-based position i.
func OptionLabel(i int) string {
	return "Option " + string(rune('1'+i))
}

// ResolvedAnswer returns the option text the correct answer key points at. Labels like
// "Option 3" go through the options; anything else is literal answer text.
func (q QuestionRecord) ResolvedAnswer() string {
	key := strings.TrimSpace(q.CorrectAnswer)
	if idx, ok := LabelIndex(key); ok {
		return q.Options[idx]
	}
	return key
}

// HasOption reports whether text is one of the record's options.
func (q QuestionRecord) HasOption(text string) bool {
	for _, opt := range q.Options {
		if opt == text {
			return true
		}
	}
	return false
}

// LabelIndex parses "Option N" (any case or spacing) into a zero-based position.
func LabelIndex(key string) (int, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(key), ""))
	if !strings.HasPrefix(normalized, "option") {
		return 0, false
	}
	normalized = strings.TrimPrefix(normalized, "option")
	if len(normalized) != 1 {
		return 0, false
	}
	d := normalized[0]
	if d < '1' || d > '0'+OptionCount {
		return 0, false
	}
	return int(d - '1'), true
}

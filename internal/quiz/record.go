package quiz

import (
	"reflect"
	"sort"
	"strings"

	"DrishtiGPT-Learning-Backend/internal/model"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

const (
	KeyQuestion      = "Question"
	KeyCorrectAnswer = "Correct Answer"
	KeyExplanation   = "Explanation"
)

const (
	PlaceholderQuestion    = "Untitled question"
	PlaceholderOption      = "N/A"
	PlaceholderExplanation = "No explanation provided."
)

type rawQuestion struct {
	Question      string `mapstructure:"Question"`
	Option1       string `mapstructure:"Option 1"`
	Option2       string `mapstructure:"Option 2"`
	Option3       string `mapstructure:"Option 3"`
	Option4       string `mapstructure:"Option 4"`
	CorrectAnswer string `mapstructure:"Correct Answer"`
	Explanation   string `mapstructure:"Explanation"`
}

// keyAliases maps compacted, lower-cased payload keys to their canonical names.
var keyAliases = map[string]string{
	"question":      KeyQuestion,
	"option1":       "Option 1",
	"option2":       "Option 2",
	"option3":       "Option 3",
	"option4":       "Option 4",
	"correctanswer": KeyCorrectAnswer,
	"correctoption": KeyCorrectAnswer,
	"answer":        KeyCorrectAnswer,
	"explanation":   KeyExplanation,
}

func canonicalKey(k string) string {
	compact := strings.ToLower(strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, k))
	if name, ok := keyAliases[compact]; ok {
		return name
	}
	return k
}

// stringHook renders every scalar the model produced (numbers, booleans) as text.
func stringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	return cast.ToStringE(data)
}

// buildRecord turns one decoded object into a QuestionRecord. Absent keys become
// placeholders and are listed in Missing.
func buildRecord(obj map[string]any) (model.QuestionRecord, error) {
	normalized := make(map[string]any, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		normalized[canonicalKey(k)] = v
	}

	var raw rawQuestion
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringHook,
		Metadata:   &md,
		Result:     &raw,
	})
	if err != nil {
		return model.QuestionRecord{}, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return model.QuestionRecord{}, err
	}

	missing := make(map[string]bool, len(md.Unset))
	for _, name := range md.Unset {
		missing[name] = true
	}
	if missing[KeyQuestion] && missing["Option 1"] && missing["Option 2"] && missing["Option 3"] && missing["Option 4"] {
		return model.QuestionRecord{}, ErrNotQuestion
	}

	rec := model.QuestionRecord{
		Question:      fieldOr(raw.Question, PlaceholderQuestion),
		CorrectAnswer: clean(raw.CorrectAnswer),
		Explanation:   fieldOr(raw.Explanation, PlaceholderExplanation),
	}
	for i, opt := range []string{raw.Option1, raw.Option2, raw.Option3, raw.Option4} {
		rec.Options[i] = fieldOr(opt, PlaceholderOption)
	}
	rec.Missing = append(rec.Missing, md.Unset...)
	sort.Strings(rec.Missing)
	rec.CorrectAnswer = normalizeAnswerKey(rec)
	return rec, nil
}

func clean(s string) string {
	return strings.TrimSpace(decodeUnicodeEscapes(s))
}

func fieldOr(s, placeholder string) string {
	if s = clean(s); s != "" {
		return s
	}
	return placeholder
}

// normalizeAnswerKey rewrites positional answers ("2", "B") into option labels when the
// raw key is not itself one of the option texts.
func normalizeAnswerKey(rec model.QuestionRecord) string {
	key := rec.CorrectAnswer
	if key == "" || rec.HasOption(key) {
		return key
	}
	if _, ok := model.LabelIndex(key); ok {
		return key
	}
	if n, err := cast.ToIntE(key); err == nil && n >= 1 && n <= model.OptionCount {
		return model.OptionLabel(n - 1)
	}
	if len(key) == 1 {
		if c := key[0] | 0x20; c >= 'a' && c < 'a'+model.OptionCount {
			return model.OptionLabel(int(c - 'a'))
		}
	}
	return key
}

// AnswerResolves reports whether the correct answer points at one of the options.
func AnswerResolves(rec model.QuestionRecord) bool {
	return rec.HasOption(rec.ResolvedAnswer())
}

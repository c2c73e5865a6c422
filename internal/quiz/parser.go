package quiz

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"DrishtiGPT-Learning-Backend/internal/model"
	"DrishtiGPT-Learning-Backend/internal/utils"

	"github.com/pkg/errors"
)

// Strategy names the decode path that produced the buckets of a payload.
type Strategy string

const (
	StrategyStructuredList Strategy = "structured-list"
	StrategyDelimited      Strategy = "delimited-fragments"
	StrategySingleObject   Strategy = "single-object"
)

const snippetRunes = 60

// Result is the outcome of a successful Parse.
type Result struct {
	Questions []model.QuestionRecord
	// Malformed holds the fragments that were skipped, in payload order.
	Malformed []*MalformedError
	Strategy  Strategy
}

var (
	blankLineRe = regexp.MustCompile(`\n[ \t\r]*\n`)
	codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\r?\n(.*?)\r?\n?```$")
)

// bucket is a unit of text still to be split, or an object that arrived already decoded.
type bucket struct {
	text    string
	decoded map[string]any
}

type parser struct {
	result Result
}

// Parse decodes the quiz payload returned by the chat API. Strategies run in a fixed
// order: structured-list, delimited-fragments, single-object. A fragment that fails to
// decode is recorded in Result.Malformed and skipped; ErrEmpty is returned when no
// fragment produced a question.
func Parse(raw string) (Result, error) {
	p := &parser{}
	text := stripCodeFence(strings.TrimSpace(raw))

	buckets, ok := structuredList(text)
	if ok {
		p.result.Strategy = StrategyStructuredList
	} else {
		p.result.Strategy = StrategyDelimited
		buckets = []bucket{{text: text}}
	}

	for _, b := range buckets {
		if b.decoded != nil {
			p.addObject(b.decoded, "")
			continue
		}
		p.addBucket(b.text)
	}

	if len(p.result.Questions) == 0 {
		return p.result, ErrEmpty
	}
	return p.result, nil
}

func stripCodeFence(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// structuredList recognizes a payload that is a sequence: a JSON array of strings or
// objects, or the literal list-of-strings notation.
func structuredList(text string) ([]bucket, bool) {
	if !strings.HasPrefix(text, "[") {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err == nil {
		buckets := make([]bucket, 0, len(elems))
		for _, elem := range elems {
			var s string
			if json.Unmarshal(elem, &s) == nil {
				buckets = append(buckets, bucket{text: s})
				continue
			}
			var obj map[string]any
			if json.Unmarshal(elem, &obj) == nil && obj != nil {
				buckets = append(buckets, bucket{decoded: obj})
				continue
			}
			buckets = append(buckets, bucket{text: string(elem)})
		}
		return buckets, true
	}

	items, err := decodeStringList(text)
	if err != nil {
		return nil, false
	}
	buckets := make([]bucket, len(items))
	for i, item := range items {
		buckets[i] = bucket{text: item}
	}
	return buckets, true
}

// addBucket splits one bucket on blank lines. When no fragment survives the split but
// the bucket as a whole decodes as a stream of objects (pretty-printed objects with
// blank lines inside), the whole-bucket decode takes over.
func (p *parser) addBucket(text string) {
	start := len(p.result.Malformed)
	added := 0
	for _, frag := range blankLineRe.Split(text, -1) {
		added += p.addFragment(frag)
	}
	if added > 0 {
		return
	}

	objs, err := decodeFragment(strings.TrimSpace(text))
	if err != nil || len(objs) == 0 {
		return
	}
	p.result.Malformed = p.result.Malformed[:start]
	for _, obj := range objs {
		p.addObject(obj, text)
	}
	if len(objs) == 1 && p.result.Strategy == StrategyDelimited {
		p.result.Strategy = StrategySingleObject
	}
}

func (p *parser) addFragment(frag string) int {
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return 0
	}
	objs, err := decodeFragment(frag)
	added := 0
	for _, obj := range objs {
		if p.addObject(obj, frag) {
			added++
		}
	}
	if err != nil {
		p.malformed(frag, err)
	}
	return added
}

func (p *parser) addObject(obj map[string]any, source string) bool {
	rec, err := buildRecord(obj)
	if err != nil {
		if source == "" {
			if b, mErr := json.Marshal(obj); mErr == nil {
				source = string(b)
			}
		}
		p.malformed(source, err)
		return false
	}
	p.result.Questions = append(p.result.Questions, rec)
	return true
}

func (p *parser) malformed(source string, err error) {
	p.result.Malformed = append(p.result.Malformed, &MalformedError{
		Index:   len(p.result.Questions) + len(p.result.Malformed) + 1,
		Snippet: utils.Truncate(utils.CollapseSpace(source), snippetRunes),
		Err:     err,
	})
}

// decodeFragment reads every JSON value in frag. A fragment that only decodes after
// one level of backslash unescaping is retried that way. Objects decoded before an
// error are still returned alongside it.
func decodeFragment(frag string) ([]map[string]any, error) {
	objs, err := decodeStream(frag)
	if err != nil && len(objs) == 0 && strings.Contains(frag, `\`) {
		if retried, retryErr := decodeStream(unescapeFragment(frag)); retryErr == nil {
			return retried, nil
		}
	}
	return objs, err
}

func decodeStream(frag string) ([]map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(frag))
	var objs []map[string]any
	for {
		var v any
		err := dec.Decode(&v)
		if err == io.EOF {
			return objs, nil
		}
		if err != nil {
			return objs, errors.Wrap(err, "decode json")
		}
		switch val := v.(type) {
		case map[string]any:
			objs = append(objs, val)
		case []any:
			for _, item := range val {
				obj, ok := item.(map[string]any)
				if !ok {
					return objs, errors.Errorf("array element is %T, not an object", item)
				}
				objs = append(objs, obj)
			}
		default:
			return objs, errors.Errorf("value is %T, not an object", v)
		}
	}
}

package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON indicates no parsable JSON object could be recovered from a
// model response.
var ErrNoJSON = errors.New("no json object in model response")

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractObject recovers a JSON object from a model's text response. Models
// are not guaranteed to emit pure JSON even when instructed to, so three
// tiers are tried in order: a fenced ```json block, the substring between
// the first '{' and the last '}', and finally the whole response.
func ExtractObject(raw string) (map[string]any, error) {
	if match := fencedJSONRe.FindStringSubmatch(raw); match != nil {
		if obj, err := parseObject(match[1]); err == nil {
			return obj, nil
		}
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		if obj, err := parseObject(raw[first : last+1]); err == nil {
			return obj, nil
		}
	}

	if obj, err := parseObject(raw); err == nil {
		return obj, nil
	}
	return nil, ErrNoJSON
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseItinerary parses the model's response text into a TravelData payload.
// Structured output should yield clean JSON, but model responses occasionally
// arrive wrapped in prose or code fences, so parsing tries multiple
// strategies: direct parse, first-{ to last-} window, then code blocks.
// Any failure is a generation failure; no partial payload is returned.
func ParseItinerary(text string) (*TravelData, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", ErrGenerationFailed)
	}

	if data, ok := tryUnmarshal(text); ok {
		return data, nil
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if data, ok := tryUnmarshal(text[start : end+1]); ok {
				return data, nil
			}
		}
	}

	for _, fence := range []string{"```json", "```"} {
		if idx := strings.Index(text, fence); idx >= 0 {
			after := text[idx+len(fence):]
			if end := strings.Index(after, "```"); end >= 0 {
				if data, ok := tryUnmarshal(strings.TrimSpace(after[:end])); ok {
					return data, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: response text is not valid JSON: %.120s", ErrGenerationFailed, text)
}

func tryUnmarshal(s string) (*TravelData, bool) {
	var data TravelData
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, false
	}
	return &data, true
}

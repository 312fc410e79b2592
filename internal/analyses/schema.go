package analyses

import "fmt"

// Expected element counts from the prompt contracts.
const (
	roastPointsPerLanguage = 5
	improvementTipCount    = 3
	atsScoreMin            = 0
	atsScoreMax            = 100
)

var roastLanguages = []string{"english", "hindi", "telugu"}

// IsNotResume reports whether the payload is the model's own "not a resume"
// escape shape. That shape is a successful round-trip, not a failure.
func IsNotResume(payload map[string]any) bool {
	_, ok := payload["error"]
	return ok
}

// ValidateRoast checks a parsed roast payload against the prompt contract.
// The "Not a Resume" escape shape is accepted as-is. Each language entry may
// be an array of exactly 5 strings or, as a legacy shape, a single string.
func ValidateRoast(payload map[string]any) error {
	if IsNotResume(payload) {
		return nil
	}

	var issues []string

	roast, ok := payload["roast"].(map[string]any)
	if !ok {
		issues = append(issues, "missing roast object")
	} else {
		for _, lang := range roastLanguages {
			val, ok := roast[lang]
			if !ok {
				issues = append(issues, fmt.Sprintf("roast.%s missing", lang))
				continue
			}
			switch v := val.(type) {
			case string:
				// legacy single-string shape
			case []any:
				if len(v) != roastPointsPerLanguage {
					issues = append(issues, fmt.Sprintf("roast.%s has %d points, want %d", lang, len(v), roastPointsPerLanguage))
				}
				if !allStrings(v) {
					issues = append(issues, fmt.Sprintf("roast.%s contains non-string points", lang))
				}
			default:
				issues = append(issues, fmt.Sprintf("roast.%s has unexpected type", lang))
			}
		}
	}

	improvements, ok := payload["improvements"].([]any)
	if !ok {
		issues = append(issues, "missing improvements array")
	} else {
		if len(improvements) != improvementTipCount {
			issues = append(issues, fmt.Sprintf("improvements has %d tips, want %d", len(improvements), improvementTipCount))
		}
		if !allStrings(improvements) {
			issues = append(issues, "improvements contains non-string tips")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateATS checks a parsed ATS payload against the prompt contract.
func ValidateATS(payload map[string]any) error {
	var issues []string

	score, ok := atsScoreFrom(payload)
	if !ok {
		issues = append(issues, "missing or non-integer ats_score")
	} else if score < atsScoreMin || score > atsScoreMax {
		issues = append(issues, fmt.Sprintf("ats_score %d out of range [%d,%d]", score, atsScoreMin, atsScoreMax))
	}

	for _, key := range []string{"keywords_found", "missing_important_keywords", "formatting_issues"} {
		arr, ok := payload[key].([]any)
		if !ok {
			issues = append(issues, fmt.Sprintf("missing %s array", key))
			continue
		}
		if !allStrings(arr) {
			issues = append(issues, fmt.Sprintf("%s contains non-string entries", key))
		}
	}

	if _, ok := payload["summary"].(string); !ok {
		issues = append(issues, "missing summary string")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func atsScoreFrom(payload map[string]any) (int, bool) {
	raw, ok := payload["ats_score"].(float64)
	if !ok {
		return 0, false
	}
	if raw != float64(int(raw)) {
		return 0, false
	}
	return int(raw), true
}

func allStrings(vals []any) bool {
	for _, v := range vals {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

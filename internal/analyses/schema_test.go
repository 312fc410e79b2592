package analyses

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	return payload
}

func validRoastPayload(t *testing.T) map[string]any {
	t.Helper()
	return mustParse(t, `{
		"roast": {
			"english": ["a", "b", "c", "d", "e"],
			"hindi": ["a", "b", "c", "d", "e"],
			"telugu": ["a", "b", "c", "d", "e"]
		},
		"improvements": ["x", "y", "z"]
	}`)
}

func TestValidateRoastAccepts(t *testing.T) {
	if err := ValidateRoast(validRoastPayload(t)); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateRoastAcceptsLegacyStringShape(t *testing.T) {
	payload := validRoastPayload(t)
	payload["roast"].(map[string]any)["hindi"] = "one long paragraph"
	if err := ValidateRoast(payload); err != nil {
		t.Fatalf("expected legacy string shape to validate, got %v", err)
	}
}

func TestValidateRoastAcceptsNotResumeShape(t *testing.T) {
	payload := mustParse(t, `{"error": "Not a Resume", "details": "nope"}`)
	if err := ValidateRoast(payload); err != nil {
		t.Fatalf("expected escape shape to validate, got %v", err)
	}
}

func TestValidateRoastRejectsWrongPointCount(t *testing.T) {
	payload := validRoastPayload(t)
	payload["roast"].(map[string]any)["english"] = []any{"a", "b", "c", "d"}

	err := ValidateRoast(payload)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(valErr.Error(), "roast.english") {
		t.Fatalf("expected english issue, got %v", valErr.Issues)
	}
}

func TestValidateRoastRejectsMissingLanguage(t *testing.T) {
	payload := validRoastPayload(t)
	delete(payload["roast"].(map[string]any), "telugu")

	var valErr *ValidationError
	if !errors.As(ValidateRoast(payload), &valErr) {
		t.Fatal("expected ValidationError for missing language")
	}
}

func TestValidateRoastRejectsWrongTipCount(t *testing.T) {
	payload := validRoastPayload(t)
	payload["improvements"] = []any{"only one"}

	var valErr *ValidationError
	if !errors.As(ValidateRoast(payload), &valErr) {
		t.Fatal("expected ValidationError for wrong tip count")
	}
}

func validATSPayload(t *testing.T) map[string]any {
	t.Helper()
	return mustParse(t, `{
		"ats_score": 72,
		"keywords_found": ["go", "postgres"],
		"missing_important_keywords": ["kubernetes"],
		"formatting_issues": [],
		"summary": "solid but plain"
	}`)
}

func TestValidateATSAccepts(t *testing.T) {
	if err := ValidateATS(validATSPayload(t)); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateATSRejectsMissingScore(t *testing.T) {
	payload := validATSPayload(t)
	delete(payload, "ats_score")

	var valErr *ValidationError
	if !errors.As(ValidateATS(payload), &valErr) {
		t.Fatal("expected ValidationError for missing score")
	}
}

func TestValidateATSRejectsScoreOutOfRange(t *testing.T) {
	payload := validATSPayload(t)
	payload["ats_score"] = float64(150)

	var valErr *ValidationError
	if !errors.As(ValidateATS(payload), &valErr) {
		t.Fatal("expected ValidationError for score out of range")
	}
}

func TestValidateATSRejectsFractionalScore(t *testing.T) {
	payload := validATSPayload(t)
	payload["ats_score"] = 72.5

	var valErr *ValidationError
	if !errors.As(ValidateATS(payload), &valErr) {
		t.Fatal("expected ValidationError for fractional score")
	}
}

func TestValidateATSRejectsMissingArrays(t *testing.T) {
	payload := validATSPayload(t)
	delete(payload, "keywords_found")

	var valErr *ValidationError
	if !errors.As(ValidateATS(payload), &valErr) {
		t.Fatal("expected ValidationError for missing keywords_found")
	}
}

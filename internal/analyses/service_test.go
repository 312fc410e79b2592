package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MithunChowdary/resume-roaster/internal/llm"
)

const roastJSON = `{
	"roast": {
		"english": ["e1", "e2", "e3", "e4", "e5"],
		"hindi": ["h1", "h2", "h3", "h4", "h5"],
		"telugu": ["t1", "t2", "t3", "t4", "t5"]
	},
	"improvements": ["i1", "i2", "i3"]
}`

const atsJSON = `{
	"ats_score": 64,
	"keywords_found": ["go", "sql"],
	"missing_important_keywords": ["docker"],
	"formatting_issues": ["two columns"],
	"summary": "fine"
}`

type stubLLM struct {
	response string
	err      error
	calls    int
	lastReq  llm.CompletionRequest
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, rec Record) error { return errors.New("db down") }
func (failingRepo) Count(ctx context.Context) (int64, error)     { return 0, errors.New("db down") }

func textExtractor(text string) Extractor {
	return func(ctx context.Context, data []byte) (string, error) {
		return text, nil
	}
}

func newTestService(llmStub *stubLLM, ext Extractor) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{
		Repo:           repo,
		LLM:            llmStub,
		Extract:        ext,
		ExtractTimeout: time.Second,
		LLMTimeout:     time.Second,
	}, repo
}

func resumeText() string {
	return strings.Repeat("Senior engineer shipping Go services. ", 5)
}

func TestRoastHappyPath(t *testing.T) {
	llmStub := &stubLLM{response: roastJSON}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	payload, err := svc.Roast(context.Background(), []byte("pdf"), "Hindi")
	if err != nil {
		t.Fatalf("Roast: %v", err)
	}
	roast := payload["roast"].(map[string]any)
	for _, lang := range []string{"english", "hindi", "telugu"} {
		points, ok := roast[lang].([]any)
		if !ok || len(points) != 5 {
			t.Fatalf("expected 5 %s points, got %v", lang, roast[lang])
		}
	}
	if tips := payload["improvements"].([]any); len(tips) != 3 {
		t.Fatalf("expected 3 improvement tips, got %d", len(tips))
	}

	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Mode != ModeRoast {
		t.Fatalf("expected mode roast, got %s", rec.Mode)
	}
	if rec.Language != "Hindi" {
		t.Fatalf("expected language Hindi, got %s", rec.Language)
	}
	if rec.ResumeTextLength != len(resumeText()) {
		t.Fatalf("unexpected resume text length %d", rec.ResumeTextLength)
	}
	if rec.ATSScore != nil {
		t.Fatal("roast record must not carry an ats score")
	}

	if llmStub.lastReq.Temperature != roastTemperature {
		t.Fatalf("expected roast temperature %v, got %v", roastTemperature, llmStub.lastReq.Temperature)
	}
	if llmStub.lastReq.MaxTokens != roastMaxTokens {
		t.Fatalf("expected roast max tokens %d, got %d", roastMaxTokens, llmStub.lastReq.MaxTokens)
	}
}

func TestRoastDefaultsLanguage(t *testing.T) {
	llmStub := &stubLLM{response: roastJSON}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	if _, err := svc.Roast(context.Background(), []byte("pdf"), "  "); err != nil {
		t.Fatalf("Roast: %v", err)
	}
	if recs := repo.Records(); recs[0].Language != "English" {
		t.Fatalf("expected default language English, got %s", recs[0].Language)
	}
}

func TestShortTextSkipsModelCall(t *testing.T) {
	llmStub := &stubLLM{response: roastJSON}
	svc, repo := newTestService(llmStub, textExtractor("   short   "))

	_, err := svc.Roast(context.Background(), []byte("pdf"), "English")
	if !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("expected ErrTextTooShort, got %v", err)
	}
	if llmStub.calls != 0 {
		t.Fatalf("expected no model calls, got %d", llmStub.calls)
	}
	if len(repo.Records()) != 0 {
		t.Fatal("expected no record for rejected input")
	}
}

func TestExtractionFailure(t *testing.T) {
	llmStub := &stubLLM{response: roastJSON}
	svc, repo := newTestService(llmStub, func(ctx context.Context, data []byte) (string, error) {
		return "", errors.New("bad xref table")
	})

	_, err := svc.Roast(context.Background(), []byte("junk"), "English")
	if !errors.Is(err, ErrExtract) {
		t.Fatalf("expected ErrExtract, got %v", err)
	}
	if llmStub.calls != 0 {
		t.Fatal("expected no model call after extraction failure")
	}
	if len(repo.Records()) != 0 {
		t.Fatal("expected no record after extraction failure")
	}
}

func TestNotResumePayloadPassesThrough(t *testing.T) {
	llmStub := &stubLLM{response: `{"error": "Not a Resume", "details": "This document does not look like a resume. Please upload a valid CV."}`}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	payload, err := svc.Roast(context.Background(), []byte("pdf"), "English")
	if err != nil {
		t.Fatalf("Roast: %v", err)
	}
	if payload["error"] != "Not a Resume" {
		t.Fatalf("expected escape payload passthrough, got %v", payload)
	}
	if len(repo.Records()) != 1 {
		t.Fatal("expected escape round-trip to be recorded")
	}
}

func TestMalformedRoastPayloadRejected(t *testing.T) {
	llmStub := &stubLLM{response: `{"roast": {"english": ["only", "four", "points", "here"], "hindi": ["h1","h2","h3","h4","h5"], "telugu": ["t1","t2","t3","t4","t5"]}, "improvements": ["a","b","c"]}`}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	_, err := svc.Roast(context.Background(), []byte("pdf"), "English")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.Records()) != 0 {
		t.Fatal("malformed payload must not be persisted")
	}
}

func TestRoastFencedResponseParses(t *testing.T) {
	llmStub := &stubLLM{response: "Sure, here you go:\n```json\n" + roastJSON + "\n```"}
	svc, _ := newTestService(llmStub, textExtractor(resumeText()))

	payload, err := svc.Roast(context.Background(), []byte("pdf"), "English")
	if err != nil {
		t.Fatalf("Roast: %v", err)
	}
	if _, ok := payload["roast"]; !ok {
		t.Fatalf("expected roast payload, got %v", payload)
	}
}

func TestUnparsableModelResponse(t *testing.T) {
	llmStub := &stubLLM{response: "I refuse to answer in JSON today."}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	_, err := svc.Roast(context.Background(), []byte("pdf"), "English")
	if !errors.Is(err, llm.ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
	if len(repo.Records()) != 0 {
		t.Fatal("expected no record for unparsable response")
	}
}

func TestATSHappyPath(t *testing.T) {
	llmStub := &stubLLM{response: atsJSON}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	payload, err := svc.ATSCheck(context.Background(), []byte("pdf"))
	if err != nil {
		t.Fatalf("ATSCheck: %v", err)
	}
	if payload["ats_score"] != float64(64) {
		t.Fatalf("unexpected ats_score %v", payload["ats_score"])
	}

	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Mode != ModeATS {
		t.Fatalf("expected mode ats, got %s", rec.Mode)
	}
	if rec.ATSScore == nil || *rec.ATSScore != 64 {
		t.Fatalf("expected persisted score 64, got %v", rec.ATSScore)
	}
	if rec.Language != "" {
		t.Fatalf("ats record must not carry a language, got %q", rec.Language)
	}

	if llmStub.lastReq.Temperature != atsTemperature {
		t.Fatalf("expected ats temperature %v, got %v", atsTemperature, llmStub.lastReq.Temperature)
	}
	if llmStub.lastReq.MaxTokens != atsMaxTokens {
		t.Fatalf("expected ats max tokens %d, got %d", atsMaxTokens, llmStub.lastReq.MaxTokens)
	}
}

func TestATSScoreOutOfRangeRejected(t *testing.T) {
	llmStub := &stubLLM{response: `{"ats_score": 180, "keywords_found": [], "missing_important_keywords": [], "formatting_issues": [], "summary": "x"}`}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	_, err := svc.ATSCheck(context.Background(), []byte("pdf"))
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.Records()) != 0 {
		t.Fatal("out-of-range score must not be persisted")
	}
}

func TestModelErrorPropagates(t *testing.T) {
	llmStub := &stubLLM{err: fmt.Errorf("groq error: overloaded")}
	svc, repo := newTestService(llmStub, textExtractor(resumeText()))

	if _, err := svc.Roast(context.Background(), []byte("pdf"), "English"); err == nil {
		t.Fatal("expected model error to propagate")
	}
	if len(repo.Records()) != 0 {
		t.Fatal("expected no record after model failure")
	}
}

func TestPersistenceFailurePropagates(t *testing.T) {
	llmStub := &stubLLM{response: roastJSON}
	svc := &Service{
		Repo:    failingRepo{},
		LLM:     llmStub,
		Extract: textExtractor(resumeText()),
	}

	if _, err := svc.Roast(context.Background(), []byte("pdf"), "English"); err == nil {
		t.Fatal("expected persistence failure to propagate")
	}
}

func TestTotalProcessedBestEffort(t *testing.T) {
	svc := &Service{Repo: failingRepo{}}
	if total := svc.TotalProcessed(context.Background()); total != 0 {
		t.Fatalf("expected 0 on repo failure, got %d", total)
	}

	repo := NewMemoryRepo()
	_ = repo.Create(context.Background(), Record{ID: "r1", Mode: ModeRoast})
	_ = repo.Create(context.Background(), Record{ID: "r2", Mode: ModeATS})
	svc = &Service{Repo: repo}
	if total := svc.TotalProcessed(context.Background()); total != 2 {
		t.Fatalf("expected 2, got %d", total)
	}
}

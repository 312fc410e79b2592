package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MithunChowdary/resume-roaster/internal/llm"
	"github.com/MithunChowdary/resume-roaster/internal/shared/metrics"
	"github.com/MithunChowdary/resume-roaster/internal/shared/telemetry"
)

// minResumeChars is the input-quality gate: extracted text shorter than this
// after trimming is rejected before any model call.
const minResumeChars = 50

// Sampling parameters per mode. Roast wants variance; ATS scoring wants to
// be repeatable.
const (
	roastTemperature = 1.0
	roastMaxTokens   = 3000
	atsTemperature   = 0.3
	atsMaxTokens     = 2000
)

// Extractor converts raw PDF bytes into plain text.
type Extractor func(ctx context.Context, data []byte) (string, error)

// Service runs the analysis pipeline: extract, gate, prompt, call model,
// recover JSON, validate, persist.
type Service struct {
	Repo           Repo
	LLM            llm.Client
	Extract        Extractor
	ExtractTimeout time.Duration
	LLMTimeout     time.Duration
}

// Roast runs the roast pipeline over an uploaded PDF and returns the model
// payload to forward verbatim.
func (s *Service) Roast(ctx context.Context, pdfData []byte, language string) (map[string]any, error) {
	if strings.TrimSpace(language) == "" {
		language = "English"
	}
	return s.analyze(ctx, pdfData, ModeRoast, language)
}

// ATSCheck runs the ATS pipeline over an uploaded PDF and returns the model
// payload to forward verbatim.
func (s *Service) ATSCheck(ctx context.Context, pdfData []byte) (map[string]any, error) {
	return s.analyze(ctx, pdfData, ModeATS, "")
}

// TotalProcessed returns the count of persisted records. Stats are
// best-effort: any persistence failure yields 0, never an error.
func (s *Service) TotalProcessed(ctx context.Context) int64 {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		telemetry.Error("stats.count.failed", map[string]any{"err": err.Error()})
		return 0
	}
	return total
}

func (s *Service) analyze(ctx context.Context, pdfData []byte, mode, language string) (map[string]any, error) {
	metrics.IncStarted(mode)
	start := time.Now()

	payload, err := s.run(ctx, pdfData, mode, language)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncFailed(mode)
		return nil, err
	}
	metrics.IncCompleted(mode)
	return payload, nil
}

func (s *Service) run(ctx context.Context, pdfData []byte, mode, language string) (map[string]any, error) {
	text, err := s.extractText(ctx, pdfData)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(text)) < minResumeChars {
		return nil, ErrTextTooShort
	}

	raw, err := s.complete(ctx, mode, text)
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractObject(raw)
	if err != nil {
		return nil, fmt.Errorf("recover model payload: %w", err)
	}

	if err := s.validate(mode, payload); err != nil {
		telemetry.Error("analysis.payload.invalid", map[string]any{
			"mode": mode,
			"err":  err.Error(),
		})
		return nil, err
	}

	rec := Record{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		Mode:             mode,
		Language:         language,
		ResumeTextLength: len(text),
		Result:           payload,
	}
	if mode == ModeATS {
		if score, ok := atsScoreFrom(payload); ok {
			rec.ATSScore = &score
		}
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	telemetry.Info("analysis.complete", map[string]any{
		"mode":               mode,
		"record_id":          rec.ID,
		"resume_text_length": rec.ResumeTextLength,
	})
	return payload, nil
}

func (s *Service) extractText(ctx context.Context, pdfData []byte) (string, error) {
	extractCtx := ctx
	if s.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, s.ExtractTimeout)
		defer cancel()
	}

	text, err := s.Extract(extractCtx, pdfData)
	if err != nil {
		if extractCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: extraction: %v", llm.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrExtract, err)
	}
	return text, nil
}

func (s *Service) complete(ctx context.Context, mode, text string) (string, error) {
	req := llm.CompletionRequest{
		Prompt:      RoastPrompt(text),
		Temperature: roastTemperature,
		MaxTokens:   roastMaxTokens,
	}
	if mode == ModeATS {
		req = llm.CompletionRequest{
			Prompt:      ATSPrompt(text),
			Temperature: atsTemperature,
			MaxTokens:   atsMaxTokens,
		}
	}

	llmCtx := ctx
	if s.LLMTimeout > 0 {
		var cancel context.CancelFunc
		llmCtx, cancel = context.WithTimeout(ctx, s.LLMTimeout)
		defer cancel()
	}
	return s.LLM.Complete(llmCtx, req)
}

func (s *Service) validate(mode string, payload map[string]any) error {
	if mode == ModeATS {
		return ValidateATS(payload)
	}
	return ValidateRoast(payload)
}

package analyses

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MithunChowdary/resume-roaster/internal/llm"
	"github.com/MithunChowdary/resume-roaster/internal/shared/server/respond"
	"github.com/MithunChowdary/resume-roaster/internal/shared/telemetry"
)

// User-facing error strings are part of the API contract.
const (
	errNoFile        = "No resume file uploaded"
	errReadPDF       = "Failed to read PDF file."
	errTextTooShort  = "Resume text is too short or empty."
	errKeyMissing    = "Server misconfiguration: AI Key missing."
	errTimedOut      = "The analyzer timed out"
	errBadPayload    = "Invalid analyzer response"
	errRoastFailed   = "Roasting failed"
	errATSScanFailed = "ATS Scan failed"
)

// Handler exposes the analysis endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.getStats)
	rg.POST("/roast", h.roast)
	rg.POST("/ats-check", h.atsCheck)
}

func (h *Handler) getStats(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	respond.OK(c, gin.H{"totalProcessed": h.Svc.TotalProcessed(c.Request.Context())})
}

func (h *Handler) roast(c *gin.Context) {
	c.Set("analysisMode", ModeRoast)

	data, ok := h.stageUpload(c)
	if !ok {
		return
	}
	language := c.DefaultPostForm("language", "English")

	payload, err := h.Svc.Roast(c.Request.Context(), data, language)
	if err != nil {
		h.writeAnalysisError(c, errRoastFailed, err)
		return
	}
	respond.OK(c, payload)
}

func (h *Handler) atsCheck(c *gin.Context) {
	c.Set("analysisMode", ModeATS)

	data, ok := h.stageUpload(c)
	if !ok {
		return
	}

	payload, err := h.Svc.ATSCheck(c.Request.Context(), data)
	if err != nil {
		h.writeAnalysisError(c, errATSScanFailed, err)
		return
	}
	respond.OK(c, payload)
}

// stageUpload persists the uploaded file to a per-request temp path, reads
// it back, and removes it. Cleanup runs on every path; removal failures are
// swallowed. On failure a response has already been written and ok is false.
func (h *Handler) stageUpload(c *gin.Context) (data []byte, ok bool) {
	file, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, errNoFile, "")
		return nil, false
	}

	tempPath := filepath.Join(os.TempDir(), "resume-upload-"+uuid.NewString()+".pdf")
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			telemetry.Error("upload.cleanup.failed", map[string]any{
				"path": tempPath,
				"err":  err.Error(),
			})
		}
	}()

	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, errReadPDF, err.Error())
		return nil, false
	}
	data, err = os.ReadFile(tempPath)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, errReadPDF, err.Error())
		return nil, false
	}

	telemetry.Info("upload.staged", map[string]any{
		"file_name":  file.Filename,
		"size_bytes": file.Size,
		"request_id": c.GetString("requestId"),
	})
	return data, true
}

func (h *Handler) writeAnalysisError(c *gin.Context, fallback string, err error) {
	var valErr *ValidationError
	switch {
	case errors.Is(err, ErrTextTooShort):
		respond.Error(c, http.StatusBadRequest, errTextTooShort, "")
	case errors.Is(err, ErrExtract):
		respond.Error(c, http.StatusInternalServerError, errReadPDF, "")
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.Error(c, http.StatusInternalServerError, errKeyMissing, "")
	case errors.Is(err, llm.ErrUpstreamTimeout):
		respond.Error(c, http.StatusGatewayTimeout, errTimedOut, err.Error())
	case errors.As(err, &valErr):
		respond.Error(c, http.StatusBadGateway, errBadPayload, valErr.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

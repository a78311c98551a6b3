package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/documents"
	"cvmatch-backend/internal/shared/server/middleware"
	"cvmatch-backend/internal/shared/server/respond"
)

// maxUploadBytes caps the whole multipart body. Large CVs are refused
// before any parsing work happens.
const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// Older clients send the part under cv_file.
		fileHeader, err = c.FormFile("cv_file")
	}
	if err != nil {
		if isBodyTooLarge(err) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "Uploaded file exceeds the 10 MB limit.")
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "Missing CV file or job description")
		return
	}

	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "Missing CV file or job description")
		return
	}

	doc, err := documents.FromFileHeader(fileHeader)
	if err != nil {
		status, code, message := classifyFailure(err)
		respond.Error(c, status, code, message)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Analyze(ctx, doc, jobDescription)
	if err != nil {
		status, code, message := classifyFailure(err)
		respond.Error(c, status, code, message)
		return
	}

	respond.OK(c, result)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

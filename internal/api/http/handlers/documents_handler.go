package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/api/dto"
	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/service"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// DocumentsHandler manages document listing, upload and deletion.
type DocumentsHandler struct {
	catalog  *service.CatalogService
	uploads  *service.UploadService
	teams    *service.TeamService
	progress *service.MemoryProgress
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(catalogService *service.CatalogService, uploadService *service.UploadService, teamService *service.TeamService, progress *service.MemoryProgress) *DocumentsHandler {
	return &DocumentsHandler{catalog: catalogService, uploads: uploadService, teams: teamService, progress: progress}
}

// ListDocuments GET /documents. Optional ?search= narrows the listing by
// filename or uploader, case-insensitively; ?team_id= pins it to one team.
func (h *DocumentsHandler) ListDocuments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	directory := h.teams.ListTeams(c.Context(), principal.Actor)
	docs, err := h.catalog.ListDocuments(c.Context(), principal.Actor, directory.Scope)
	if err != nil {
		return err
	}
	search := strings.TrimSpace(c.Query("search"))
	teamID := strings.TrimSpace(c.Query("team_id"))
	if search != "" || teamID != "" {
		docs = service.FilterDocuments(docs, search, teamID)
	}
	return c.JSON(fiber.Map{"data": dto.NewDocumentResponses(docs)})
}

// UploadDocuments POST /documents. Accepts a multipart form with one or more
// "files" parts and a "team_id" field naming the destination team.
func (h *DocumentsHandler) UploadDocuments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return apperrors.NewValidationError("no files submitted", nil)
	}

	var teamID *string
	if raw := strings.TrimSpace(c.FormValue("team_id")); raw != "" {
		directory := h.teams.ListTeams(c.Context(), principal.Actor)
		if !directory.Contains(raw) {
			return apperrors.NewForbidden("team is not accessible")
		}
		teamID = &raw
	}

	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable file part",
				map[string]any{"filename": header.Filename})
		}
		opened = append(opened, file)
		files = append(files, service.UploadFile{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		})
	}

	outcomes, err := h.uploads.UploadBatch(c.Context(), principal.Actor, teamID, files, h.progress)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			status = http.StatusMultiStatus
			break
		}
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewUploadOutcomeResponses(outcomes)})
}

// UploadProgress GET /documents/progress. Returns the live per-file upload
// progress keyed by token.
func (h *DocumentsHandler) UploadProgress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": h.progress.Snapshot()})
}

// DeleteDocument DELETE /documents/:id.
func (h *DocumentsHandler) DeleteDocument(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.catalog.DeleteDocument(c.Context(), principal.Actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"os"
	"path/filepath"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/config"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/pagination"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles evidence document upload and download
type DocumentHandler struct {
	docRepo *repositories.DocumentRepository
	cfg     *config.Config
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docRepo *repositories.DocumentRepository, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
		cfg:     cfg,
	}
}

// Upload handles document upload
// @Summary Upload document
// @Description Upload an evidence document for the caller's school
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param purpose formData string false "Upload purpose (document or evidence)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	// Evidence bundles get a larger ceiling than standalone documents
	maxSize := int64(upload.MaxDocumentSize)
	if c.FormValue("purpose") == "evidence" {
		maxSize = upload.MaxEvidenceSize
	}

	mimeType, err := upload.Validate(header, maxSize)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			return response.BadRequest(c, "File is too large")
		case errors.Is(err, upload.ErrTypeNotAllowed):
			return response.BadRequest(c, "File type not allowed")
		default:
			return response.BadRequest(c, "Invalid file")
		}
	}

	storedName := upload.StoredName(mimeType)
	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}
	if err := c.SaveFile(header, filepath.Join(h.cfg.Upload.Dir, storedName)); err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}

	doc := &models.Document{
		OriginalName: upload.SafeOriginalName(header.Filename),
		StoredName:   storedName,
		MimeType:     mimeType,
		SizeBytes:    header.Size,
	}

	if err := h.docRepo.Create(c.UserContext(), scope, doc); err != nil {
		// Remove the orphaned file so the store stays the source of truth
		_ = os.Remove(filepath.Join(h.cfg.Upload.Dir, storedName))
		return response.InternalServerError(c, "Failed to save document")
	}

	return response.Created(c, "Document uploaded successfully", doc)
}

// Download handles document download
// @Summary Download document
// @Tags Documents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.docRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Document not found")
	}

	path := filepath.Join(h.cfg.Upload.Dir, doc.StoredName)
	if _, err := os.Stat(path); err != nil {
		return response.NotFound(c, "Document file is missing")
	}

	return c.Download(path, doc.OriginalName)
}

// Get handles fetching document metadata
// @Summary Get document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.docRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Document not found")
	}

	return response.Success(c, "Document retrieved successfully", doc)
}

// Delete handles document removal
// @Summary Delete document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	if err := h.docRepo.Delete(c.UserContext(), scope, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to delete document")
	}

	return response.Success(c, "Document deleted successfully", nil)
}

// List handles listing documents
// @Summary List documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	docs, total, err := h.docRepo.List(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", pagination.NewResponse(docs, params, total))
}

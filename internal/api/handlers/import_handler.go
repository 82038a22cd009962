package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/internal/api/presenters"
	"github.com/ucmiku/CS307ProjectII/pkg/importer"
)

type (
	ImportHandler interface {
		ImportData(c *fiber.Ctx) error
	}

	importHandler struct {
		importService importer.ImportService
		validator     *validator.Validate
	}
)

func NewImportHandler(importService importer.ImportService, validator *validator.Validate) ImportHandler {
	return &importHandler{
		importService: importService,
		validator:     validator,
	}
}

func (h *importHandler) ImportData(c *fiber.Ctx) error {
	req := new(domain.ImportRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImport, err)
	}

	if err := h.importService.Import(c.Context(), *req); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedImport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessImport)
}

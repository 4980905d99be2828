package handler

import (
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/middleware"
	"roadmap-checkup/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the loaded price catalog and program descriptions.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func catalogStatus(catalog *domain.Catalog) dto.CatalogStatusResponse {
	resp := dto.CatalogStatusResponse{
		Status:         catalog.Status,
		PricedPrograms: catalog.Prices.ProgramCount(),
		Programs:       len(catalog.Programs),
	}
	if !catalog.LoadedAt.IsZero() {
		loadedAt := catalog.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}

// GetStatus godoc
// @Summary Catalog data status
// @Description success when the sheet loaded, demo when built-in prices are in use, loading before the first load
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogStatusResponse
// @Router /catalog/status [get]
func (h *CatalogHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(catalogStatus(h.catalogService.Current()))
}

// Reload godoc
// @Summary Reload the catalog from the spreadsheet
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CatalogStatusResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /catalog/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	return c.JSON(catalogStatus(h.catalogService.Reload(c.UserContext())))
}

// GetProgram godoc
// @Summary Program description
// @Description Returns the description of a program code such as FF30, or a fallback message when it is not available
// @Tags catalog
// @Produce json
// @Param code path string true "Program code"
// @Param compact query bool false "Limit key directions to 4"
// @Success 200 {object} dto.ProgramDetailsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /programs/{code} [get]
func (h *CatalogHandler) GetProgram(c *fiber.Ctx) error {
	limit := domain.DefaultKeyDirections
	if c.QueryBool("compact") {
		limit = domain.CompactKeyDirections
	}

	details, ok := h.catalogService.ProgramDetails(middleware.ProgramCode(c), limit)
	if !ok {
		return c.JSON(dto.ProgramDetailsResponse{
			Available: false,
			Message:   domain.ProgramDetailsFallback,
		})
	}
	return c.JSON(dto.ProgramDetailsResponse{
		Available: true,
		Details:   &details,
	})
}

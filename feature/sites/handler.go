package sites

import (
	"errors"

	"picklist/core/logger"
	"picklist/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the site table.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sites routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sites")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
	group.Get("/:code", h.HandleLookup)
}

// HandleList returns every site.
// @Summary List Sites
// @Tags sites
// @Produce json
// @Success 200 {array} reconcile.SiteRecord "Sites"
// @Failure 502 {object} map[string]string "Site store unavailable"
// @Router /sites [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing sites failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if records == nil {
		records = []reconcile.SiteRecord{}
	}
	return c.JSON(records)
}

// HandleLookup finds one site by code.
// @Summary Get Site
// @Description Look a site up by new code, legacy code, or both (new first).
// @Tags sites
// @Produce json
// @Param code path string true "Site code"
// @Param space query string false "new, legacy, or empty for either"
// @Success 200 {object} reconcile.SiteRecord "Site"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 502 {object} map[string]string "Site store unavailable"
// @Router /sites/{code} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	rec, err := h.service.Lookup(c.Context(), c.Params("code"), c.Query("space"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "site not found"})
	}
	return c.JSON(rec)
}

// HandleImport upserts a site sheet into the hosted table.
// @Summary Import Sites
// @Tags sites
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Site table (xlsx or csv)"
// @Success 200 {object} coresites.ImportSummary "Import counts"
// @Failure 400 {object} map[string]string "Invalid sheet"
// @Failure 409 {object} map[string]string "Import not supported by the site source"
// @Router /sites/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is missing"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	summary, err := h.service.Import(c.Context(), fh.Filename, f)
	if err != nil {
		var (
			readErr   *reconcile.InputReadError
			schemaErr *reconcile.SchemaError
		)
		switch {
		case errors.Is(err, ErrImportUnsupported):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &readErr), errors.As(err, &schemaErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Site import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

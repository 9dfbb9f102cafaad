package integrity

import (
	"errors"

	"picklist/core/logger"
	"picklist/core/utils"
	"picklist/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.DatabaseReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Checks the database tables and the storage bucket.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if dbReport, err := h.service.CheckDatabase(); err != nil {
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["database"] = dbReport
	}

	if stReport, err := h.service.CheckStorage(c.Context()); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = stReport
	}

	return c.JSON(report)
}

// HandleDatabaseCheck checks and optionally migrates the tables.
// @Summary Check Database
// @Description Checks that the sites and activity_records tables carry every column. Optionally migrates them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Migrate missing tables and columns"
// @Success 200 {object} checks.DatabaseReport "Database Report"
// @Failure 503 {object} map[string]string "No database configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDatabase()
	if err != nil {
		return h.fail(c, l, "Database check failed", err)
	}

	if !report.Matched && utils.ToBool(c.Query("fix")) {
		l.Info("Attempting to migrate tables")
		if err := h.service.FixDatabase(); err != nil {
			return h.fail(c, l, "Database migration failed", err)
		}
		if report, err = h.service.CheckDatabase(); err != nil {
			return h.fail(c, l, "Database check failed", err)
		}
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the bucket.
// @Summary Check Storage
// @Description Checks that the bucket exists and, for the storage site source, that the site sheet is present.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket if missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		return h.fail(c, l, "Storage check failed", err)
	}

	if !report.BucketExists && utils.ToBool(c.Query("fix")) {
		if err := h.service.FixStorage(c.Context()); err != nil {
			return h.fail(c, l, "Bucket creation failed", err)
		}
		if report, err = h.service.CheckStorage(c.Context()); err != nil {
			return h.fail(c, l, "Storage check failed", err)
		}
	}

	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, ErrNoDatabase) {
		status = fiber.StatusServiceUnavailable
	} else {
		l.Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

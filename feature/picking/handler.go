package picking

import (
	"errors"
	"mime/multipart"
	"net/url"

	"picklist/core/logger"
	"picklist/core/reconcile"
	"picklist/core/sheet"
	"picklist/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for picking runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the picking routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/picking")
	group.Post("/runs", h.HandleCreateRun)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Get("/runs/:id/files/:name", h.HandleGetFile)
	group.Delete("/runs/:id", h.HandleDeleteRun)
}

// HandleCreateRun reconciles uploaded order files and stores the reports.
// @Summary Create Picking Run
// @Description Reconcile web orders, manual orders and the SKU master against the site table, record first distributions and store per-warehouse picking lists.
// @Tags picking
// @Accept multipart/form-data
// @Produce json
// @Param web formData file true "Web order export"
// @Param manual formData file true "Manual order template"
// @Param master formData file true "SKU master list"
// @Param sites formData file false "Site table (required when no hosted site store is configured)"
// @Param ledger formData string false "Record distributions (default true)"
// @Success 201 {object} RunReport "Run report"
// @Failure 400 {object} map[string]string "Unreadable or incomplete input"
// @Failure 502 {object} map[string]string "Site store unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /picking/runs [post]
func (h *Handler) HandleCreateRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in RunInput
	var files []multipart.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	open := func(field string, required bool) (*Upload, error) {
		fh, err := c.FormFile(field)
		if err != nil {
			if !required {
				return nil, nil
			}
			return nil, &reconcile.InputReadError{Channel: field, Err: errors.New("file is missing")}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, &reconcile.InputReadError{Channel: field, Err: err}
		}
		files = append(files, f)
		return &Upload{Name: fh.Filename, Reader: f}, nil
	}

	for _, field := range []struct {
		name string
		dst  *Upload
	}{
		{reconcile.ChannelWeb, &in.Web},
		{reconcile.ChannelManual, &in.Manual},
		{reconcile.ChannelMaster, &in.Master},
	} {
		u, err := open(field.name, true)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		*field.dst = *u
	}
	sitesUpload, err := open(reconcile.ChannelSites, false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	in.Sites = sitesUpload
	in.SkipLedger = !utils.BoolOr(c.FormValue("ledger"), true)

	report, err := h.service.Run(c.Context(), in)
	if err != nil {
		status := StatusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Picking run failed", zap.Error(err))
		} else {
			l.Warn("Picking run rejected", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Picking run finished",
		zap.String("run_id", report.ID),
		zap.Int("valid", report.Summary.ValidLines),
		zap.Int("invalid_sku", report.Summary.InvalidSKU),
		zap.Int("invalid_site", report.Summary.InvalidSite),
	)
	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleListRuns lists stored run ids.
// @Summary List Picking Runs
// @Tags picking
// @Produce json
// @Success 200 {object} map[string][]string "Run ids"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /picking/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	ids, err := h.service.ListRuns(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"runs": ids})
}

// HandleGetRun returns the stored report of a run.
// @Summary Get Picking Run
// @Tags picking
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} RunReport "Run report"
// @Failure 404 {object} map[string]string "Run not found"
// @Router /picking/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	report, err := h.service.GetRun(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleGetFile downloads one report of a run.
// @Summary Download Report
// @Tags picking
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run id"
// @Param name path string true "File name, e.g. picking_WH-A.xlsx"
// @Success 200 {file} file "Workbook"
// @Failure 404 {object} map[string]string "File not found"
// @Router /picking/runs/{id}/files/{name} [get]
func (h *Handler) HandleGetFile(c *fiber.Ctx) error {
	// Route params stay percent-encoded; warehouse names are often not ASCII.
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrRunNotFound.Error()})
	}
	data, err := h.service.OpenFile(c.Context(), c.Params("id"), name)
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, sheet.ContentType)
	c.Attachment(name)
	return c.Send(data)
}

// HandleDeleteRun removes a run and its reports.
// @Summary Delete Picking Run
// @Tags picking
// @Param id path string true "Run id"
// @Success 204
// @Failure 404 {object} map[string]string "Run not found"
// @Router /picking/runs/{id} [delete]
func (h *Handler) HandleDeleteRun(c *fiber.Ctx) error {
	if err := h.service.DeleteRun(c.Context(), c.Params("id")); err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

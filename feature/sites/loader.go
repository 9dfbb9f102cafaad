package sites

import (
	"picklist/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the sites feature. store is the hosted site store and
// may be nil, which disables the feature.
func NewFeature(store reconcile.SiteStore, importer Importer, columns reconcile.ColumnMap, logger *zap.Logger) *Feature {
	svc := NewService(store, importer, columns, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sites"
}

// IsEnabled reports whether a hosted site store is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.store != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

package integrity

import (
	"context"
	"errors"

	"picklist/core/storage"
	"picklist/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by database checks when no connection exists.
var ErrNoDatabase = errors.New("no database connection configured")

// Options selects what the checks expect.
type Options struct {
	Region string
	// SiteObject is checked in the bucket when set.
	SiteObject string
	RunPrefix  string
	// Models are the gorm models whose tables must exist.
	Models []any
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	opts   Options
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, opts Options) *Service {
	if opts.RunPrefix == "" {
		opts.RunPrefix = "runs"
	}
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		opts:   opts,
	}
}

// CheckDatabase inspects the application tables.
func (s *Service) CheckDatabase() (*checks.DatabaseReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckDatabase(s.db, s.opts.Models...)
}

// FixDatabase migrates the application tables.
func (s *Service) FixDatabase() error {
	if s.db == nil {
		return ErrNoDatabase
	}
	return checks.FixDatabase(s.db, s.opts.Models...)
}

// CheckStorage inspects the bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.opts.SiteObject, s.opts.RunPrefix)
}

// FixStorage creates the bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.opts.Region, s.logger)
}

package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one (site, SKU) pair that has already been distributed.
type Record struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	SiteCode     string    `gorm:"column:site_code;type:varchar(64);not null;uniqueIndex:idx_activity_site_sku"`
	SKUCode      string    `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:idx_activity_site_sku"`
	ActivityName string    `gorm:"column:activity_name;type:varchar(128);not null;default:''"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "activity_records"
}

// Store implements reconcile.Ledger on a database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a ledger over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the activity_records table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate activity_records table: %w", err)
	}
	return nil
}

// Exists reports whether the pair already has a record.
func (s *Store) Exists(ctx context.Context, siteCode, skuCode string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Record{}).
		Where("site_code = ? AND sku_code = ?", siteCode, skuCode).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to query activity_records: %w", err)
	}
	return n > 0, nil
}

// Insert adds a record. Inserting a pair that already exists is a no-op.
func (s *Store) Insert(ctx context.Context, siteCode, skuCode, label string) error {
	rec := Record{SiteCode: siteCode, SKUCode: skuCode, ActivityName: label}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to insert activity record: %w", err)
	}
	return nil
}

// List returns the records of a site, oldest first.
func (s *Store) List(ctx context.Context, siteCode string) ([]Record, error) {
	var out []Record
	err := s.db.WithContext(ctx).
		Where("site_code = ?", siteCode).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activity records: %w", err)
	}
	return out, nil
}

package sites

import (
	"context"
	"errors"
	"fmt"

	"picklist/core/reconcile"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ImportSummary counts the outcome of an import.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// DBStore keeps the site table in the database.
type DBStore struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewDBStore creates a store over db.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db, validate: validator.New()}
}

// Migrate creates or updates the sites table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Site{}); err != nil {
		return fmt.Errorf("failed to migrate sites table: %w", err)
	}
	return nil
}

func (s *DBStore) FetchAll(ctx context.Context) ([]reconcile.SiteRecord, error) {
	var rows []Site
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load sites: %w", err)
	}
	records := make([]reconcile.SiteRecord, len(rows))
	for i, r := range rows {
		records[i] = r.Record()
	}
	return records, nil
}

func (s *DBStore) FetchByNewCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return s.fetchOne(ctx, "site_code", code)
}

func (s *DBStore) FetchByLegacyCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return s.fetchOne(ctx, "old_code", code)
}

// FetchByCode tries the new code column first so a code present in both
// columns always resolves to the same site.
func (s *DBStore) FetchByCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	rec, err := s.FetchByNewCode(ctx, code)
	if err != nil || rec != nil {
		return rec, err
	}
	return s.FetchByLegacyCode(ctx, code)
}

func (s *DBStore) fetchOne(ctx context.Context, column, code string) (*reconcile.SiteRecord, error) {
	code = reconcile.CanonicalCode(code)
	if code == "" {
		return nil, nil
	}

	var row Site
	err := s.db.WithContext(ctx).Where(column+" = ?", code).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up site %s=%s: %w", column, code, err)
	}
	rec := row.Record()
	return &rec, nil
}

// Import upserts records in one transaction. A record matches an existing
// row by new code first, then by legacy code; unmatched records are created.
func (s *DBStore) Import(ctx context.Context, records []reconcile.SiteRecord) (ImportSummary, error) {
	var summary ImportSummary
	normalized := make([]reconcile.SiteRecord, len(records))
	for i, rec := range records {
		rec.NewCode = reconcile.CanonicalCode(rec.NewCode)
		rec.LegacyCode = reconcile.CanonicalCode(rec.LegacyCode)
		if err := s.validate.Struct(rec); err != nil {
			return summary, fmt.Errorf("site %d: %w", i+1, err)
		}
		normalized[i] = rec
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range normalized {
			row := fromRecord(rec)

			existing, err := match(tx, rec)
			if err != nil {
				return fmt.Errorf("failed to match site %s/%s: %w", rec.NewCode, rec.LegacyCode, err)
			}
			if existing == nil {
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to create site %s/%s: %w", rec.NewCode, rec.LegacyCode, err)
				}
				summary.Created++
				continue
			}

			// A code missing from the import keeps its stored value.
			if row.SiteCode == nil {
				row.SiteCode = existing.SiteCode
			}
			if row.OldCode == nil {
				row.OldCode = existing.OldCode
			}
			err = tx.Model(existing).
				Select("site_code", "old_code", "warehouse", "name", "company", "updated_at").
				Updates(&row).Error
			if err != nil {
				return fmt.Errorf("failed to update site %d: %w", existing.ID, err)
			}
			summary.Updated++
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

// match finds the row a record refers to, by new code first.
func match(tx *gorm.DB, rec reconcile.SiteRecord) (*Site, error) {
	for _, c := range []struct{ column, code string }{
		{"site_code", rec.NewCode},
		{"old_code", rec.LegacyCode},
	} {
		if c.code == "" {
			continue
		}
		var row Site
		err := tx.Where(c.column+" = ?", c.code).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &row, nil
	}
	return nil, nil
}

// Count returns the number of stored sites.
func (s *DBStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Site{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count sites: %w", err)
	}
	return n, nil
}

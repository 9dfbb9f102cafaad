package sites

import (
	"time"

	"picklist/core/reconcile"
)

// Site is a row of the sites table. Either code may be NULL; each is unique
// when present.
type Site struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	SiteCode  *string   `gorm:"column:site_code;type:varchar(64);uniqueIndex"`
	OldCode   *string   `gorm:"column:old_code;type:varchar(64);uniqueIndex"`
	Warehouse string    `gorm:"column:warehouse;type:varchar(128);not null;default:''"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;default:''"`
	Company   string    `gorm:"column:company;type:varchar(255);not null;default:''"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Site) TableName() string {
	return "sites"
}

// Record converts the row to a site record.
func (s Site) Record() reconcile.SiteRecord {
	return reconcile.SiteRecord{
		NewCode:    deref(s.SiteCode),
		LegacyCode: deref(s.OldCode),
		Warehouse:  s.Warehouse,
		Name:       s.Name,
		Company:    s.Company,
	}
}

func fromRecord(rec reconcile.SiteRecord) Site {
	return Site{
		SiteCode:  nullable(rec.NewCode),
		OldCode:   nullable(rec.LegacyCode),
		Warehouse: rec.Warehouse,
		Name:      rec.Name,
		Company:   rec.Company,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

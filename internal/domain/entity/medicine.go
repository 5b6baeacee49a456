package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a catalog entry. The encounter workflow never writes it.
type Medicine struct {
	ID            int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Concentration string          `gorm:"type:varchar(100)" json:"concentration,omitempty"`
	Unit          string          `gorm:"type:varchar(50)" json:"unit,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Categories []MedicineCategory `gorm:"many2many:medicine_category_links;" json:"categories,omitempty"`
}

func (Medicine) TableName() string {
	return "medicines"
}

type MedicineCategory struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (MedicineCategory) TableName() string {
	return "medicine_categories"
}

// MedicineFilter is a domain-level filter for catalog searches.
type MedicineFilter struct {
	Query      string // Name contains (ILIKE)
	CategoryID int
	IDs        []int
	Limit      int
}

// CacheKey renders the filter deterministically so equal filters share a
// cache entry regardless of ID order.
func (f MedicineFilter) CacheKey() string {
	ids := append([]int(nil), f.IDs...)
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("q=%s|cat=%d|ids=%s|limit=%d",
		strings.ToLower(strings.TrimSpace(f.Query)), f.CategoryID, strings.Join(parts, ","), f.Limit)
}

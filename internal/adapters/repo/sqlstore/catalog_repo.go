package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phenrril/bfguitars/internal/domain"
)

// CatalogRepo maintains the products table for the migrate and seed commands.
type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// SaveAll writes the products in one transaction. A product without an ID
// takes over the row with the same category, name and color, so importing
// the same workbook twice leaves one row per guitar.
func (r *CatalogRepo) SaveAll(ctx context.Context, list []domain.Product) (created, updated int, err error) {
	if len(list) == 0 {
		return 0, 0, nil
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, updated = 0, 0
		for i := range list {
			p := &list[i]
			if p.ID == 0 {
				id, err := matchExisting(tx, p)
				if err != nil {
					return err
				}
				p.ID = id
			}
			if p.ID == 0 {
				if err := tx.Create(p).Error; err != nil {
					return err
				}
				created++
				continue
			}
			if err := tx.Save(p).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func matchExisting(tx *gorm.DB, p *domain.Product) (int, error) {
	var existing domain.Product
	err := tx.Select("product_id").
		Where("category = ? AND name = ? AND color = ?", p.Category, p.Name, p.Color).
		Order("product_id asc").
		Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *CatalogRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	cats := []string{}
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Distinct("category").Where("category <> ''").Order("category asc").Pluck("category", &cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// Migrate creates the flat tables the storefront reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Product{}, &domain.DIYOrder{}, &domain.Feedback{})
}

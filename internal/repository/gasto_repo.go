package repository

import (
	"context"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	ListBySubcanal(ctx context.Context, subcanalID uint) ([]model.Gasto, error)
	SoftDelete(ctx context.Context, id uint) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// ListBySubcanal returns the active expense schedule of a subcanal in id order.
func (r *gastoRepo) ListBySubcanal(ctx context.Context, subcanalID uint) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("subcanal_id = ? AND activo = true", subcanalID).
		Order("id ASC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Gasto{}).Where("id = ?", id).Update("activo", false).Error
}

package repository

import (
	"context"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"gorm.io/gorm"
)

type OperacionRepository interface {
	Create(ctx context.Context, o *model.Operacion) error
	FindByID(ctx context.Context, id uint) (*model.Operacion, error)
	Update(ctx context.Context, o *model.Operacion) error
	List(ctx context.Context, filter dto.OperacionFilter, vendedorID uint) ([]model.Operacion, int64, error)

	// ListCreadasDesde feeds the CRM retry cron: operations created after
	// ref that were never synced to Kommo.
	ListCreadasDesde(ctx context.Context, ref time.Time, limit int) ([]model.Operacion, error)
	MarcarSincronizada(ctx context.Context, id uint, leadID int64) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type operacionRepo struct{ db *gorm.DB }

func NewOperacionRepository(db *gorm.DB) OperacionRepository { return &operacionRepo{db: db} }

func (r *operacionRepo) Create(ctx context.Context, o *model.Operacion) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *operacionRepo) FindByID(ctx context.Context, id uint) (*model.Operacion, error) {
	var o model.Operacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Plan").Preload("Vendedor").
		First(&o, id).Error
	return &o, err
}

func (r *operacionRepo) Update(ctx context.Context, o *model.Operacion) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// List returns a page of operations. vendedorID != 0 scopes the query to one
// vendedor (role-based narrowing happens in the service).
func (r *operacionRepo) List(ctx context.Context, filter dto.OperacionFilter, vendedorID uint) ([]model.Operacion, int64, error) {
	var operaciones []model.Operacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Operacion{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Dashboard != "" {
		q = q.Where("estado_dashboard = ?", filter.Dashboard)
	}
	if filter.CanalID != 0 {
		q = q.Where("canal_id = ?", filter.CanalID)
	}
	if vendedorID != 0 {
		q = q.Where("vendedor_id = ?", vendedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Plan").
		Order("id DESC").Limit(filter.Limit).Offset(offset).
		Find(&operaciones).Error
	return operaciones, total, err
}

func (r *operacionRepo) ListCreadasDesde(ctx context.Context, ref time.Time, limit int) ([]model.Operacion, error) {
	var operaciones []model.Operacion
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND kommo_lead_id IS NULL", ref).
		Order("id ASC").Limit(limit).
		Find(&operaciones).Error
	return operaciones, err
}

func (r *operacionRepo) MarcarSincronizada(ctx context.Context, id uint, leadID int64) error {
	return r.db.WithContext(ctx).Model(&model.Operacion{}).Where("id = ?", id).
		Update("kommo_lead_id", leadID).Error
}

func (r *operacionRepo) DB() *gorm.DB { return r.db }

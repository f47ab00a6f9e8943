package repository

import (
	"context"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"gorm.io/gorm"
)

type CanalRepository interface {
	Create(ctx context.Context, c *model.Canal) error
	FindByID(ctx context.Context, id uint) (*model.Canal, error)
	List(ctx context.Context) ([]model.Canal, error)
	Update(ctx context.Context, c *model.Canal) error
	SoftDelete(ctx context.Context, id uint) error

	CreateSubcanal(ctx context.Context, s *model.Subcanal) error
	FindSubcanalByID(ctx context.Context, id uint) (*model.Subcanal, error)
	ListSubcanales(ctx context.Context, canalID uint) ([]model.Subcanal, error)
	UpdateSubcanal(ctx context.Context, s *model.Subcanal) error

	// FindPrimerSubcanalAdmin returns the first active subcanal administered
	// by the given admincanal user, in id order.
	FindPrimerSubcanalAdmin(ctx context.Context, adminID uint) (*model.Subcanal, error)
}

type canalRepo struct{ db *gorm.DB }

func NewCanalRepository(db *gorm.DB) CanalRepository { return &canalRepo{db: db} }

func (r *canalRepo) Create(ctx context.Context, c *model.Canal) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *canalRepo) FindByID(ctx context.Context, id uint) (*model.Canal, error) {
	var c model.Canal
	err := r.db.WithContext(ctx).Preload("Subcanales").First(&c, id).Error
	return &c, err
}

func (r *canalRepo) List(ctx context.Context) ([]model.Canal, error) {
	var canales []model.Canal
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&canales).Error
	return canales, err
}

func (r *canalRepo) Update(ctx context.Context, c *model.Canal) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *canalRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Canal{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *canalRepo) CreateSubcanal(ctx context.Context, s *model.Subcanal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *canalRepo) FindSubcanalByID(ctx context.Context, id uint) (*model.Subcanal, error) {
	var s model.Subcanal
	err := r.db.WithContext(ctx).Preload("Gastos", "activo = true").First(&s, id).Error
	return &s, err
}

func (r *canalRepo) ListSubcanales(ctx context.Context, canalID uint) ([]model.Subcanal, error) {
	var subcanales []model.Subcanal
	q := r.db.WithContext(ctx).Where("activo = true").Order("id ASC")
	if canalID != 0 {
		q = q.Where("canal_id = ?", canalID)
	}
	err := q.Find(&subcanales).Error
	return subcanales, err
}

func (r *canalRepo) UpdateSubcanal(ctx context.Context, s *model.Subcanal) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *canalRepo) FindPrimerSubcanalAdmin(ctx context.Context, adminID uint) (*model.Subcanal, error) {
	var s model.Subcanal
	err := r.db.WithContext(ctx).
		Where("admin_canal_id = ? AND activo = true", adminID).
		Order("id ASC").First(&s).Error
	return &s, err
}

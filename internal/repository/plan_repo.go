package repository

import (
	"context"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanRepository is the catalog of channel-scoped financing offers plus their
// per-term rate tiers (plan_tasas) and canal links (plan_canales).
type PlanRepository interface {
	Create(ctx context.Context, p *model.Plan) error
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Plan, error)
	Update(ctx context.Context, p *model.Plan) error
	SetActivo(ctx context.Context, id uint, activo bool) error

	// FindVigentes is the catalog range query: active plans linked (and active)
	// on the canal, within their validity window at ref, whose amount band
	// covers monto and whose term list offers plazo. Ordered by id ASC so the
	// lowest-id plan wins ties deterministically.
	FindVigentes(ctx context.Context, canalID uint, monto decimal.Decimal, plazo int, ref time.Time) ([]model.Plan, error)

	LinkCanal(ctx context.Context, pc *model.PlanCanal) error
	SetCanalActivo(ctx context.Context, planID, canalID uint, activo bool) error

	CreateTasa(ctx context.Context, t *model.PlanTasa) error
	FindTasa(ctx context.Context, planID uint, plazo int) (*model.PlanTasa, error)
	ListTasas(ctx context.Context, planID uint) ([]model.PlanTasa, error)
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) Create(ctx context.Context, p *model.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *planRepo) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var p model.Plan
	err := r.db.WithContext(ctx).Preload("Tasas").First(&p, id).Error
	return &p, err
}

func (r *planRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Plan, error) {
	var planes []model.Plan
	q := r.db.WithContext(ctx).Order("id ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&planes).Error
	return planes, err
}

func (r *planRepo) Update(ctx context.Context, p *model.Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *planRepo) SetActivo(ctx context.Context, id uint, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *planRepo) FindVigentes(ctx context.Context, canalID uint, monto decimal.Decimal, plazo int, ref time.Time) ([]model.Plan, error) {
	var candidatos []model.Plan
	err := r.db.WithContext(ctx).
		Joins("JOIN plan_canales pc ON pc.plan_id = planes.id AND pc.canal_id = ? AND pc.activo = true", canalID).
		Where("planes.activo = true").
		Where("planes.fecha_inicio <= ? AND planes.fecha_fin >= ?", ref, ref).
		Where("planes.monto_minimo <= ? AND planes.monto_maximo >= ?", monto, monto).
		Order("planes.id ASC").
		Find(&candidatos).Error
	if err != nil {
		return nil, err
	}

	// Term membership lives in a CSV column; filter in Go.
	vigentes := make([]model.Plan, 0, len(candidatos))
	for i := range candidatos {
		if candidatos[i].AplicaCuota(plazo) {
			vigentes = append(vigentes, candidatos[i])
		}
	}
	return vigentes, nil
}

func (r *planRepo) LinkCanal(ctx context.Context, pc *model.PlanCanal) error {
	return r.db.WithContext(ctx).Create(pc).Error
}

func (r *planRepo) SetCanalActivo(ctx context.Context, planID, canalID uint, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.PlanCanal{}).
		Where("plan_id = ? AND canal_id = ?", planID, canalID).
		Update("activo", activo).Error
}

func (r *planRepo) CreateTasa(ctx context.Context, t *model.PlanTasa) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *planRepo) FindTasa(ctx context.Context, planID uint, plazo int) (*model.PlanTasa, error) {
	var t model.PlanTasa
	err := r.db.WithContext(ctx).Where("plan_id = ? AND plazo = ?", planID, plazo).First(&t).Error
	return &t, err
}

func (r *planRepo) ListTasas(ctx context.Context, planID uint) ([]model.PlanTasa, error) {
	var tasas []model.PlanTasa
	err := r.db.WithContext(ctx).Where("plan_id = ?", planID).Order("plazo ASC").Find(&tasas).Error
	return tasas, err
}

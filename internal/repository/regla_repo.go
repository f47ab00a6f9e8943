package repository

import (
	"context"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReglaCotizacionRepository is the catalog of anonymous quotation rules.
type ReglaCotizacionRepository interface {
	Create(ctx context.Context, regla *model.ReglaCotizacion) error
	FindByID(ctx context.Context, id uint) (*model.ReglaCotizacion, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.ReglaCotizacion, error)
	Update(ctx context.Context, regla *model.ReglaCotizacion) error
	SetActivo(ctx context.Context, id uint, activo bool) error

	// FindVigentes mirrors PlanRepository.FindVigentes without the canal scope.
	// Ordered by id ASC; ties resolve to the lowest id.
	FindVigentes(ctx context.Context, monto decimal.Decimal, plazo int, ref time.Time) ([]model.ReglaCotizacion, error)
}

type reglaRepo struct{ db *gorm.DB }

func NewReglaCotizacionRepository(db *gorm.DB) ReglaCotizacionRepository { return &reglaRepo{db: db} }

func (r *reglaRepo) Create(ctx context.Context, regla *model.ReglaCotizacion) error {
	return r.db.WithContext(ctx).Create(regla).Error
}

func (r *reglaRepo) FindByID(ctx context.Context, id uint) (*model.ReglaCotizacion, error) {
	var regla model.ReglaCotizacion
	err := r.db.WithContext(ctx).First(&regla, id).Error
	return &regla, err
}

func (r *reglaRepo) List(ctx context.Context, incluirInactivos bool) ([]model.ReglaCotizacion, error) {
	var reglas []model.ReglaCotizacion
	q := r.db.WithContext(ctx).Order("id ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&reglas).Error
	return reglas, err
}

func (r *reglaRepo) Update(ctx context.Context, regla *model.ReglaCotizacion) error {
	return r.db.WithContext(ctx).Save(regla).Error
}

func (r *reglaRepo) SetActivo(ctx context.Context, id uint, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.ReglaCotizacion{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *reglaRepo) FindVigentes(ctx context.Context, monto decimal.Decimal, plazo int, ref time.Time) ([]model.ReglaCotizacion, error) {
	var candidatas []model.ReglaCotizacion
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Where("fecha_inicio <= ? AND fecha_fin >= ?", ref, ref).
		Where("monto_minimo <= ? AND monto_maximo >= ?", monto, monto).
		Order("id ASC").
		Find(&candidatas).Error
	if err != nil {
		return nil, err
	}

	vigentes := make([]model.ReglaCotizacion, 0, len(candidatas))
	for i := range candidatas {
		if candidatas[i].AplicaCuota(plazo) {
			vigentes = append(vigentes, candidatas[i])
		}
	}
	return vigentes, nil
}

package infra

import (
	"fmt"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the domain tables and applies the idempotent patches AutoMigrate
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates all tables. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Canal{},
		&model.Subcanal{},
		&model.Gasto{},
		&model.Cliente{},
		&model.Plan{},
		&model.PlanCanal{},
		&model.PlanTasa{},
		&model.ReglaCotizacion{},
		&model.Operacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM cannot express. Each
// statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the CRM retry cron: operations never pushed to Kommo.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'operaciones')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_operaciones_sin_lead') THEN
		    CREATE INDEX idx_operaciones_sin_lead
		        ON operaciones (created_at)
		        WHERE kommo_lead_id IS NULL;
		  END IF;
		END $$`,
		// Partial index for dashboard listings filtered by bucket.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'operaciones')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_operaciones_dashboard') THEN
		    CREATE INDEX idx_operaciones_dashboard
		        ON operaciones (estado_dashboard, created_at DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}

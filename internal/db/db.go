package db

import (
	"log"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/config"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Patient{},
		&models.Appointment{},
		&models.AppointmentImage{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clinics
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// A checagem otimista de disponibilidade roda sobre snapshot e não
	// fecha a corrida de duas reservas simultâneas. A invariante de
	// não-sobreposição por profissional é garantida aqui, no banco.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                professional_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            )
            WHERE (status IN ('pending', 'confirmed', 'completed') AND deleted_at IS NULL);
        EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
        END $$
    `)

	return db
}

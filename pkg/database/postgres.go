package database

import (
	"log"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Review{},
		&models.Coupon{},
		&models.Voucher{},
		&models.Points{},
		&models.Transaction{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Backstop for the guarded seat updates: the database itself refuses an
	// out-of-range remaining_seats.
	db.Exec(`
		ALTER TABLE events DROP CONSTRAINT IF EXISTS chk_events_remaining_seats;
		ALTER TABLE events ADD CONSTRAINT chk_events_remaining_seats
		CHECK (remaining_seats >= 0 AND remaining_seats <= total_seats)
	`)
	db.Exec(`
		ALTER TABLE coupons DROP CONSTRAINT IF EXISTS chk_coupons_use_count;
		ALTER TABLE coupons ADD CONSTRAINT chk_coupons_use_count
		CHECK (use_count >= 0 AND use_count <= max_usage)
	`)
	db.Exec(`
		ALTER TABLE vouchers DROP CONSTRAINT IF EXISTS chk_vouchers_usage_amount;
		ALTER TABLE vouchers ADD CONSTRAINT chk_vouchers_usage_amount
		CHECK (usage_amount >= 0 AND usage_amount <= max_usage)
	`)

	return db
}

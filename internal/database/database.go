package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"quickcourt/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema and the uniqueness indexes the booking core
// relies on. The partial index on bookings is the actual double-booking
// guard: application-level pre-checks only exist for friendly errors.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Sport{},
		&domain.Venue{},
		&domain.Court{},
		&domain.AvailabilityWindow{},
		&domain.BlockedWindow{},
		&domain.Booking{},
		&domain.Review{},
	); err != nil {
		return err
	}

	// Partial unique indexes work on both PostgreSQL and SQLite.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
		   ON bookings (court_id, date, slot_start, slot_end)
		   WHERE status <> 'cancelled'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_blocked_window
		   ON blocked_windows (court_id, date, start_time, end_time)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_review_per_venue
		   ON reviews (user_id, venue_id)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"quickcourt/internal/database"
	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
	"quickcourt/internal/repository"
)

func main() {
	db, err := database.Connect("quickcourt.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM blocked_windows")
	db.Exec("DELETE FROM availability_windows")
	db.Exec("DELETE FROM courts")
	db.Exec("DELETE FROM venues")
	db.Exec("DELETE FROM sports")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	venues := repository.NewVenueRepository(db)
	courts := repository.NewCourtRepository(db)
	windows := repository.NewAvailabilityRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := &domain.User{
		Email:        "admin@quickcourt.in",
		PasswordHash: hash("admin123"),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		City:         "Ahmedabad",
	}
	owner := &domain.User{
		Email:        "owner@quickcourt.in",
		PasswordHash: hash("owner123"),
		Name:         "Shrimad Patel",
		Role:         domain.RoleOwner,
		City:         "Ahmedabad",
	}
	player := &domain.User{
		Email:        "player@quickcourt.in",
		PasswordHash: hash("player123"),
		Name:         "Riya Shah",
		Role:         domain.RoleUser,
		City:         "Ahmedabad",
	}
	for _, u := range []*domain.User{admin, owner, player} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user create failed:", err)
		}
	}

	// ================== SPORTS ==================
	log.Println("Creating sports...")

	badminton := domain.Sport{Name: "Badminton"}
	tennis := domain.Sport{Name: "Tennis"}
	basketball := domain.Sport{Name: "Basketball"}
	for _, s := range []*domain.Sport{&badminton, &tennis, &basketball} {
		if err := db.WithContext(ctx).Create(s).Error; err != nil {
			log.Fatal("sport create failed:", err)
		}
	}

	// ================== VENUE ==================
	log.Println("Creating venue...")

	venue := &domain.Venue{
		OwnerID:              owner.ID,
		Name:                 "Shrimad Sports",
		Description:          "Indoor and outdoor courts in the heart of the city.",
		City:                 "Ahmedabad",
		Locality:             "Navrangpura",
		StartingPricePerHour: 500,
		IsApproved:           true,
	}
	if err := venues.Create(ctx, venue); err != nil {
		log.Fatal("venue create failed:", err)
	}

	// ================== COURTS + WINDOWS ==================
	log.Println("Creating courts and availability windows...")

	fixtures := []struct {
		name         string
		sportID      int64
		pricePerHour float64
	}{
		{"Badminton Court 1", badminton.ID, 500},
		{"Badminton Court 2", badminton.ID, 500},
		{"Tennis Court", tennis.ID, 800},
		{"Basketball Court", basketball.ID, 600},
	}

	for _, f := range fixtures {
		court := &domain.Court{
			VenueID: venue.ID,
			SportID: f.sportID,
			Name:    f.name,
		}
		if err := courts.Create(ctx, court); err != nil {
			log.Fatal("court create failed:", err)
		}

		// hourly windows 09:00-21:00, same price every day type
		for _, dayType := range []domain.DayType{domain.DayWeekday, domain.DayWeekend, domain.DayHoliday} {
			for h := 9; h < 21; h++ {
				w := &domain.AvailabilityWindow{
					CourtID:      court.ID,
					DayType:      dayType,
					StartTime:    timeslot.Clock(h * 60),
					EndTime:      timeslot.Clock((h + 1) * 60),
					PricePerHour: f.pricePerHour,
				}
				if err := windows.Create(ctx, w); err != nil {
					log.Fatal("window create failed:", err)
				}
			}
		}
	}

	log.Println("Seed complete.")
	log.Println("  admin@quickcourt.in / admin123")
	log.Println("  owner@quickcourt.in / owner123")
	log.Println("  player@quickcourt.in / player123")
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}
	return string(h)
}

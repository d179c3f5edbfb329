package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"voyago/internal/destinations"
	"voyago/internal/events"
	"voyago/internal/shared/config"
	"voyago/internal/shared/database"
	"voyago/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Voyago Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"events",
		"destinations",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedDestinations(userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed destinations: %w", err)
	}

	if err := s.SeedEvents(userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Flush Redis so stale catalogue entries never survive a reseed.
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@voyago.test", users.RoleAdmin},
		{"user1", "Asha", "Nair", "asha.nair@voyago.test", users.RoleUser},
		{"user2", "Rohan", "Mehta", "rohan.mehta@voyago.test", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedDestinations creates sample travel packages
func (s *Seeder) SeedDestinations(adminID uuid.UUID) error {
	fmt.Println("  🏝️ Seeding destinations...")

	destinationsData := []struct {
		name         string
		state        string
		description  string
		packagePrice float64
		isActive     bool
	}{
		{"Goa Beach Getaway", "Goa", "Four days of beaches, forts and seafood along the Konkan coast.", 12000, true},
		{"Manali Mountain Retreat", "Himachal Pradesh", "Himalayan valley stay with Solang and Rohtang excursions.", 15000, true},
		{"Kerala Backwaters Cruise", "Kerala", "Houseboat cruise through the Alleppey backwaters.", 18000, true},
		{"Jaipur Heritage Trail", "Rajasthan", "Palaces, bazaars and the Amber Fort in the Pink City.", 9500, true},
		{"Rann of Kutch Safari", "Gujarat", "White desert camp under the full moon. Seasonal.", 11000, false},
	}

	for _, d := range destinationsData {
		destination := destinations.Destination{
			ID:           uuid.New(),
			Name:         d.name,
			State:        d.state,
			Description:  d.description,
			PackagePrice: d.packagePrice,
			IsActive:     d.isActive,
			CreatedBy:    adminID,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&destination).Error; err != nil {
			return fmt.Errorf("failed to create destination %s: %w", destination.Name, err)
		}
		fmt.Printf("    ✅ Created destination: %s (₹%.0f)\n", destination.Name, destination.PackagePrice)
	}

	return nil
}

// SeedEvents creates sample bookable events
func (s *Seeder) SeedEvents(adminID uuid.UUID) error {
	fmt.Println("  🎪 Seeding events...")

	eventsData := []struct {
		name        string
		venue       string
		description string
		daysFromNow int
		ticketPrice float64
		isActive    bool
	}{
		{"Sunburn Music Festival", "Vagator Beach, Goa", "Asia's biggest electronic dance music festival.", 45, 4500, true},
		{"Jaipur Literature Festival", "Diggi Palace, Jaipur", "Five days of talks with authors from around the world.", 120, 500, true},
		{"Hornbill Festival", "Kisama Heritage Village", "Naga tribes celebrate culture, music and food.", 90, 1200, true},
		{"Pushkar Camel Fair", "Pushkar Grounds", "The famous desert livestock fair and carnival.", 60, 800, false},
	}

	for _, e := range eventsData {
		event := events.Event{
			ID:          uuid.New(),
			Name:        e.name,
			Venue:       e.venue,
			Description: e.description,
			DateTime:    time.Now().AddDate(0, 0, e.daysFromNow),
			TicketPrice: e.ticketPrice,
			IsActive:    e.isActive,
			CreatedBy:   adminID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event %s: %w", event.Name, err)
		}
		fmt.Printf("    ✅ Created event: %s (₹%.0f)\n", event.Name, event.TicketPrice)
	}

	return nil
}

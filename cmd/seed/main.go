package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

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

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_seats",
		"bookings",
		"seats",
		"showtimes",
		"screens",
		"theaters",
		"movies",
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

	if _, err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	theaterList, err := s.SeedTheaters()
	if err != nil {
		return fmt.Errorf("failed to seed theaters: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShowtimes(movieIDs, theaterList); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	// Clear Redis cache so reads start fresh
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

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key   string
		name  string
		email string
		role  users.Role
	}{
		{"admin", "Admin User", "admin@cinebook.io", users.RoleAdmin},
		{"user1", "Asha Rao", "asha.rao@example.com", users.RoleUser},
		{"user2", "Vikram Iyer", "vikram.iyer@example.com", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:       uuid.New(),
			Name:     userData.name,
			Email:    userData.email,
			Password: string(hashedPassword),
			Role:     userData.role,
			Preferences: users.Preferences{
				EmailNotifications: true,
			},
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

// SeedTheaters creates theaters with screens of varying capacity
func (s *Seeder) SeedTheaters() ([]theaters.Theater, error) {
	fmt.Println("  🏟️ Seeding theaters...")

	theatersData := []theaters.Theater{
		{
			ID:       uuid.New(),
			Name:     "PVR Phoenix",
			Location: "Lower Parel, Mumbai",
			Screens: []theaters.Screen{
				{ID: uuid.New(), Name: "Audi 1", Capacity: 100},
				{ID: uuid.New(), Name: "Audi 2", Capacity: 60},
			},
		},
		{
			ID:       uuid.New(),
			Name:     "INOX Garuda",
			Location: "Magrath Road, Bengaluru",
			Screens: []theaters.Screen{
				{ID: uuid.New(), Name: "Screen A", Capacity: 80},
				{ID: uuid.New(), Name: "Screen B", Capacity: 40},
			},
		},
	}

	for i := range theatersData {
		if err := s.db.PostgreSQL.Create(&theatersData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create theater %s: %w", theatersData[i].Name, err)
		}
		fmt.Printf("    ✅ Created theater: %s (%d screens)\n", theatersData[i].Name, len(theatersData[i].Screens))
	}

	return theatersData, nil
}

// SeedMovies creates a small catalog
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	releaseDate := func(value string) time.Time {
		t, _ := time.Parse("2006-01-02", value)
		return t
	}

	moviesData := []movies.Movie{
		{ID: uuid.New(), Title: "Inception", Description: "A thief who steals corporate secrets through dream-sharing technology.", Genre: "Sci-Fi", Duration: 148, ReleaseDate: releaseDate("2010-07-16")},
		{ID: uuid.New(), Title: "The Dark Knight", Description: "Batman faces the Joker in Gotham City.", Genre: "Action", Duration: 152, ReleaseDate: releaseDate("2008-07-18")},
		{ID: uuid.New(), Title: "Interstellar", Description: "Explorers travel through a wormhole in space to save humanity.", Genre: "Sci-Fi", Duration: 169, ReleaseDate: releaseDate("2014-11-07")},
		{ID: uuid.New(), Title: "3 Idiots", Description: "Two friends search for their long-lost companion from college.", Genre: "Comedy", Duration: 170, ReleaseDate: releaseDate("2009-12-25")},
	}

	var movieIDs []uuid.UUID
	for i := range moviesData {
		if err := s.db.PostgreSQL.Create(&moviesData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", moviesData[i].Title, err)
		}
		movieIDs = append(movieIDs, moviesData[i].ID)
		fmt.Printf("    ✅ Created movie: %s\n", moviesData[i].Title)
	}

	return movieIDs, nil
}

// SeedShowtimes schedules each movie on each theater's first screen over
// the next three evenings, with seat maps generated per screen capacity.
func (s *Seeder) SeedShowtimes(movieIDs []uuid.UUID, theaterList []theaters.Theater) error {
	fmt.Println("  🕐 Seeding showtimes...")

	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	slots := []time.Duration{0, 3 * time.Hour, 6 * time.Hour}

	created := 0
	for day := 0; day < 3; day++ {
		for i, movieID := range movieIDs {
			theater := theaterList[(day+i)%len(theaterList)]
			screen := theater.Screens[i%len(theater.Screens)]

			seats, err := showtimes.GenerateSeatMap(screen.Capacity)
			if err != nil {
				return fmt.Errorf("failed to generate seat map: %w", err)
			}

			showtime := showtimes.Showtime{
				ID:         uuid.New(),
				MovieID:    movieID,
				TheaterID:  theater.ID,
				ScreenName: screen.Name,
				StartTime:  base.AddDate(0, 0, day).Add(slots[i%len(slots)]),
				Seats:      seats,
			}

			if err := s.db.PostgreSQL.Create(&showtime).Error; err != nil {
				return fmt.Errorf("failed to create showtime: %w", err)
			}
			created++
		}
	}

	fmt.Printf("    ✅ Created %d showtimes\n", created)
	return nil
}

package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bus_fleet/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables,
// runs migrations and installs the seat uniqueness index.
func InitDB() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "busfleet")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// TranslateError lets callers match gorm.ErrDuplicatedKey on unique
	// violations instead of driver-specific error types.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Route{},
		&models.Stop{},
		&models.Bus{},
		&models.Student{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	// At most one live student per (bus, seat). The allocator pre-checks
	// occupancy for friendly errors; this index is the correctness backstop
	// under concurrent assignments. Soft-deleted rows are excluded so a
	// removed student frees their seat.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_bus_seat
		ON students (bus_id, seat_number)
		WHERE seat_number IS NOT NULL AND deleted_at IS NULL;`)

	DB = db
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}

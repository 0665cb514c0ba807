package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mrt_fare/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment
// variables, migrates the schema, and seeds the fare schedule.
func InitDB() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "fare_engine")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.FareComponent{},
		&models.Card{},
		&models.TapTransaction{},
		&models.MaintenanceFlag{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	DB = db

	seedFareSchedule(db)
}

// Default fare schedule, applied only when a component is missing so
// admin-edited prices survive restarts.
const (
	defaultMinimumFare = 10
	defaultLoad        = 20
	defaultPenaltyFee  = 50
)

func seedFareSchedule(db *gorm.DB) {
	defaults := map[string]int64{
		models.FareMinimum:     defaultMinimumFare,
		models.FareDefaultLoad: defaultLoad,
		models.FarePenalty:     defaultPenaltyFee,
	}
	for fareType, price := range defaults {
		var fc models.FareComponent
		err := db.Where("type = ?", fareType).First(&fc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.FareComponent{Type: fareType, Price: price}).Error; err != nil {
				log.Fatalf("seeding fare schedule failed: %v", err)
			}
		}
	}
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

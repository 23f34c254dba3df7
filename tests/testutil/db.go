package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/framelight/studio-api/internal/database"
	"github.com/framelight/studio-api/internal/domain"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "studio_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "studio_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "studio_test")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	require.NoError(t, database.AutoMigrate(db), "Failed to migrate test database")

	return db
}

// SetupCleanTestDB connects to the test database and wipes all data
// so the test starts from a known empty state.
func SetupCleanTestDB(t *testing.T) *gorm.DB {
	db := SetupTestDB(t)
	CleanupTestData(t, db)
	return db
}

// CleanupTestData removes test data from all tables.
// Deletes in child-first order to respect foreign key constraints.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	tables := []string{
		"bundle_items",
		"bundles",
		"service_items",
		"incomes",
		"expenses",
		"tasks",
		"deliverables",
		"scenes",
		"shoots",
		"proposal_items",
		"proposals",
		"interactions",
		"customers",
		"users",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			// Table might not exist yet, that's ok
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestCustomer creates a customer with sensible defaults
func CreateTestCustomer(t *testing.T, db *gorm.DB, name string) *domain.Customer {
	customer := &domain.Customer{
		Name:    name,
		Company: name + " AS",
		Email:   fmt.Sprintf("contact+%d@example.com", uniqueInt()),
		Phone:   "12345678",
		Status:  domain.CustomerStatusActive,
	}
	err := db.Omit(clause.Associations).Create(customer).Error
	require.NoError(t, err)
	return customer
}

// CreateTestShoot creates a shoot for the customer on the given date
func CreateTestShoot(t *testing.T, db *gorm.DB, customerID uuid.UUID, title string, date *time.Time) *domain.Shoot {
	shoot := &domain.Shoot{
		CustomerID: customerID,
		Title:      title,
		ShootDate:  date,
		Status:     domain.ShootStatusPlanned,
	}
	err := db.Omit(clause.Associations).Create(shoot).Error
	require.NoError(t, err)
	return shoot
}

func uniqueInt() int64 {
	return time.Now().UnixNano() % 1000000000
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

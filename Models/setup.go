package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database and migrates the schema. SQLite is the default;
// setting DB_DIALECT=mysql together with the DB_* variables switches to MySQL.
func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	var (
		connection *gorm.DB
		err        error
	)

	switch os.Getenv("DB_DIALECT") {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
		connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		connection, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base entities with no dependencies
	DB.AutoMigrate(
		&User{},
		&Contract{},
		&Driver{},
		&FCMToken{},
	)

	// 2. Entities with simple foreign keys
	DB.AutoMigrate(
		&Vehicle{}, // references Driver
		&Expense{}, // references Driver and Vehicle
		&Invoice{}, // references Contract
	)

	// 3. Entities depending on the above
	DB.AutoMigrate(
		&InvoicePayment{}, // owned by Invoice
		&PayrollEntry{},   // references Driver
	)
}

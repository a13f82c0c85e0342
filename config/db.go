package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var sqlDB *sql.DB

func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// BootDB opens the applicant store: a lib/pq connection that runs the
// migration DDL, then a GORM session over the same connection.
func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if sqlDB == nil {
		sqlDB = db
	}

	if err := autoMigrate(sqlDB); err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return gormDB, nil
}

func autoMigrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS applicants (
	id SERIAL PRIMARY KEY,
	version INTEGER NOT NULL DEFAULT 1,
	slh6 VARCHAR(20),
	application_year VARCHAR(4),
	residing_in_sl VARCHAR(3),
	residence_country VARCHAR(100),
	residence_agency VARCHAR(100),
	residence_state VARCHAR(100),
	first_name VARCHAR(100),
	middle_name VARCHAR(100),
	last_name VARCHAR(100),
	marital_status VARCHAR(10),
	gender VARCHAR(10),
	dob VARCHAR(10),
	age VARCHAR(3),
	occupation VARCHAR(100),
	local_language VARCHAR(50),
	hajj_before VARCHAR(3),
	hajj_year VARCHAR(50),
	passport_number VARCHAR(30),
	passport_issue_place VARCHAR(100),
	passport_issue_date VARCHAR(10),
	passport_expiry_date VARCHAR(10),
	districts TEXT[],
	residential_address VARCHAR(255),
	other_address VARCHAR(255),
	email VARCHAR(150),
	phone VARCHAR(30),
	kin_relationship VARCHAR(50),
	kin_first_name VARCHAR(100),
	kin_address VARCHAR(255),
	kin_phone VARCHAR(30),
	kin_email VARCHAR(150),
	diet_needs VARCHAR(3),
	diet_details VARCHAR(255),
	medical_condition VARCHAR(3),
	medical_details VARCHAR(255),
	covid_vaccine VARCHAR(3),
	covid_vaccine_name VARCHAR(100),
	vaccine_date VARCHAR(10),
	convicted VARCHAR(3),
	deported VARCHAR(3),
	pilgrim_photo TEXT,
	passport_photo TEXT,
	submitted_at VARCHAR(40),
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ,
	deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_applicants_application_year ON applicants (application_year);
	CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username VARCHAR(100) NOT NULL UNIQUE,
	password VARCHAR(100) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'staff'
	);
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

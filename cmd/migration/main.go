package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"mealvote/cmd/migration/initialize"
	"mealvote/cmd/migration/seed"
	"mealvote/config"
	"mealvote/internal/database"
	"mealvote/internal/logger"
	"mealvote/internal/models"

	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("migrations")
	log = log.Function("main")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	if err := ensureDatabase(config, log); err != nil {
		log.Er("failed to ensure database exists", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}

	migrationType := "up"
	if len(os.Args) > 1 {
		migrationType = os.Args[1]
	}

	switch migrationType {
	case "up":
		err = migrateUp(db, config, log)
	case "seed":
		err = migrateSeed(db, config, log)
	default:
		err = log.Error("unknown migration command", "command", migrationType)
	}

	if err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	log.Info("Migrations complete")
}

// ensureDatabase creates the application database when it does not exist yet,
// connecting to the maintenance database with the raw pq driver since GORM
// cannot open a connection to a database that is missing.
func ensureDatabase(config config.Config, log logger.Logger) error {
	log = log.Function("ensureDatabase")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=postgres sslmode=disable",
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseUser,
		config.DatabasePassword,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return log.Err("failed to open maintenance database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close maintenance database", err)
		}
	}()

	var exists bool
	err = db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		config.DatabaseName,
	).Scan(&exists)
	if err != nil {
		return log.Err("failed to check database existence", err)
	}

	if exists {
		return nil
	}

	log.Info("Creating database", "name", config.DatabaseName)
	// CREATE DATABASE cannot be parameterized.
	if strings.ContainsAny(config.DatabaseName, `"'; `) {
		return log.Error("invalid database name", "name", config.DatabaseName)
	}
	if _, err := db.Exec(fmt.Sprintf(`CREATE DATABASE %q`, config.DatabaseName)); err != nil {
		return log.Err("failed to create database", err)
	}

	return nil
}

func migrateUp(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("migrateUp")
	log.Info("Running migrations up")

	if err := db.MigrateModels(); err != nil {
		return log.Err("failed to auto migrate", err)
	}

	if err := db.CreateIndexes(); err != nil {
		return log.Err("failed to create indexes", err)
	}

	if err := initialize.InitializeTables(db.SQL, config, log); err != nil {
		return log.Err("failed to initialize tables", err)
	}

	return nil
}

func migrateSeed(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("migrateSeed")
	log.Info("Running seed")

	// Clean DB to get to a fresh state before seeding
	if err := cleanDatabase(db.SQL, log); err != nil {
		return log.Err("failed to clean database", err)
	}

	if err := db.FlushAllCaches(); err != nil {
		return log.Err("failed to flush cache databases", err)
	}

	if err := migrateUp(db, config, log); err != nil {
		return log.Err("failed to auto migrate", err)
	}

	log.Info("Seeding database")
	if err := seed.Seed(db.SQL, config, log); err != nil {
		return log.Err("failed to seed database", err)
	}

	return nil
}

func cleanDatabase(db *gorm.DB, log logger.Logger) error {
	log = log.Function("cleanDatabase")
	log.Info("Cleaning database before seeding")

	tables := []any{
		&models.Vote{},
		&models.CandidateDish{},
		&models.VotePoll{},
		&models.VoteHistory{},
		&models.CandidateDishHistory{},
		&models.Wishlist{},
		&models.Feedback{},
		&models.Dish{},
		&models.User{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		return log.Err("failed to drop tables", err)
	}

	log.Info("Database cleaned successfully")
	return nil
}

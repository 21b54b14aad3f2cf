package database

import (
	"mealvote/internal/logger"
	"mealvote/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Dish{},
		&models.VotePoll{},
		&models.CandidateDish{},
		&models.Vote{},
		&models.VoteHistory{},
		&models.CandidateDishHistory{},
		&models.Wishlist{},
		&models.Feedback{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create
// automatically. The votes uniqueness index is declared on the model as well;
// repeating it here keeps existing databases honest.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_user_poll ON votes(user_id, vote_poll_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_polls_meal_date ON vote_polls(meal_date)",
		"CREATE INDEX IF NOT EXISTS idx_vote_polls_vote_date_status ON vote_polls(vote_date, status)",
		"CREATE INDEX IF NOT EXISTS idx_votes_poll_dish ON votes(vote_poll_id, dish_id)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}

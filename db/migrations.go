package db

import (
	"log"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) {
	// Automatically migrate the schemas
	err := db.AutoMigrate(&User{}, &RefreshToken{}, &Balance{}, &UserSeed{}, &ServerSeed{}, &Round{}, &UserStats{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Ensure unique indexes
	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS user_seed_unique_idx ON user_seeds (user_id, user_seed);").Error
	if err != nil {
		log.Fatalf("failed to create unique index for user seeds: %v", err)
	}

	err = db.Exec("CREATE INDEX IF NOT EXISTS round_user_idx ON rounds (user_id, timestamp DESC);").Error
	if err != nil {
		log.Fatalf("failed to create index for rounds: %v", err)
	}

	err = db.Exec("CREATE INDEX IF NOT EXISTS round_game_idx ON rounds (game, timestamp DESC);").Error
	if err != nil {
		log.Fatalf("failed to create index for rounds: %v", err)
	}
}

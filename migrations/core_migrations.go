package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_competitions_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS competitions (
						id BIGSERIAL PRIMARY KEY,
						external_id VARCHAR(64) UNIQUE NULL,
						name VARCHAR(255) UNIQUE NOT NULL,
						format VARCHAR(50) DEFAULT 'cup',
						image VARCHAR(512),
						image2 VARCHAR(512),
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL
					);
					CREATE INDEX IF NOT EXISTS idx_competitions_deleted_at ON competitions(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS competitions CASCADE").Error
			},
		},
		{
			Name: "2025_01_03_000000_create_tournaments_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournaments (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) UNIQUE NOT NULL,
						competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
						creator_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						password VARCHAR(255) NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						rules VARCHAR(20) NOT NULL DEFAULT 'default',
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL,
						CHECK (status IN ('pending', 'active', 'completed')),
						CHECK (rules IN ('default', 'partial', 'difference'))
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_competition_id ON tournaments(competition_id);
					CREATE INDEX IF NOT EXISTS idx_tournaments_creator_id ON tournaments(creator_id);
					CREATE INDEX IF NOT EXISTS idx_tournaments_deleted_at ON tournaments(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS tournaments CASCADE").Error
			},
		},
		{
			Name: "2025_01_04_000000_create_participants_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS participants (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						points INT NOT NULL DEFAULT 0,
						exact_predictions INT NOT NULL DEFAULT 0,
						partial_predictions INT NOT NULL DEFAULT 0,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_user_tournament ON participants(user_id, tournament_id);
					CREATE INDEX IF NOT EXISTS idx_participants_tournament_id ON participants(tournament_id);
					CREATE INDEX IF NOT EXISTS idx_participants_leaderboard ON participants(tournament_id, points DESC, exact_predictions DESC);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS participants CASCADE").Error
			},
		},
		{
			Name: "2025_01_05_000000_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
						external_id VARCHAR(64) UNIQUE NULL,
						scheduled_at TIMESTAMPTZ NOT NULL,
						round INT NULL,
						venue VARCHAR(255),
						home_team VARCHAR(255) NOT NULL,
						home_team_image VARCHAR(512),
						away_team VARCHAR(255) NOT NULL,
						away_team_image VARCHAR(512),
						home_goals INT NOT NULL DEFAULT 0 CHECK (home_goals >= 0),
						away_goals INT NOT NULL DEFAULT 0 CHECK (away_goals >= 0),
						status VARCHAR(20) NOT NULL DEFAULT 'not_started',
						banner_url VARCHAR(512),
						video_url VARCHAR(512),
						scored_at TIMESTAMPTZ NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL,
						CHECK (status IN ('not_started', 'pending', 'finished', 'cancelled'))
					);
					CREATE INDEX IF NOT EXISTS idx_matches_competition_id ON matches(competition_id);
					CREATE INDEX IF NOT EXISTS idx_matches_scheduled_at ON matches(scheduled_at);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_06_000000_create_predictions_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS predictions (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
						home_goals INT NOT NULL CHECK (home_goals >= 0),
						away_goals INT NOT NULL CHECK (away_goals >= 0),
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						points INT NOT NULL DEFAULT 0,
						scored_at TIMESTAMPTZ NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						CHECK (status IN ('pending', 'correct', 'incorrect'))
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_predictions_participant_match ON predictions(participant_id, match_id);
					CREATE INDEX IF NOT EXISTS idx_predictions_match_id ON predictions(match_id);
					CREATE INDEX IF NOT EXISTS idx_predictions_status ON predictions(status);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS predictions CASCADE").Error
			},
		},
	}
}

// GetAllMigrations returns every migration in apply order.
func GetAllMigrations() []MigrationDefinition {
	return append(GetAuthMigrations(), GetCoreMigrations()...)
}

package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_06_03_000000_create_players_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGINT PRIMARY KEY,
						gamertag VARCHAR(255) NOT NULL,
						rating FLOAT DEFAULT 1200,
						total_matches INT DEFAULT 0,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						tournaments_played INT DEFAULT 0,
						tournaments_won INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_rating ON players(rating);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_06_04_000000_create_tournament_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournaments (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) UNIQUE NOT NULL,
						game VARCHAR(255),
						description TEXT,
						status VARCHAR(20) NOT NULL DEFAULT 'registration',
						max_entrants INT DEFAULT 16,
						bracket_size INT DEFAULT 0,
						current_round INT DEFAULT 0,
						total_rounds INT DEFAULT 0,
						reporting_window_hours INT DEFAULT 24,
						winner_id BIGINT,
						created_by_id BIGINT NOT NULL,
						nb_entrants INT DEFAULT 0,
						nb_matches INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (winner_id) REFERENCES players(id),
						FOREIGN KEY (created_by_id) REFERENCES users(id)
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_deleted_at ON tournaments(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_tournaments_status ON tournaments(status);
					CREATE INDEX IF NOT EXISTS idx_tournaments_game ON tournaments(game);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_players (
						id BIGSERIAL PRIMARY KEY,
						tournament_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						seed INT DEFAULT 0,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						eliminated BOOLEAN DEFAULT false,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_tournament_players_deleted_at ON tournament_players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_tournament_players_tournament_id ON tournament_players(tournament_id);
					CREATE INDEX IF NOT EXISTS idx_tournament_players_player_id ON tournament_players(player_id);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_tournament_players_entry
						ON tournament_players(tournament_id, player_id) WHERE deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS tournament_players CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS tournaments CASCADE").Error
			},
		},
		{
			Name: "2025_06_05_000000_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						tournament_id BIGINT NOT NULL,
						round INT NOT NULL,
						slot INT NOT NULL,
						player1_id BIGINT,
						player2_id BIGINT,
						score1 INT DEFAULT 0,
						score2 INT DEFAULT 0,
						winner_id BIGINT,
						status VARCHAR(20) NOT NULL DEFAULT 'waiting',
						next_match_id BIGINT,
						next_match_slot INT DEFAULT 0,
						reported_by_id BIGINT,
						deadline TIMESTAMP NULL,
						reported_at TIMESTAMP NULL,
						confirmed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
						FOREIGN KEY (player1_id) REFERENCES players(id),
						FOREIGN KEY (player2_id) REFERENCES players(id),
						FOREIGN KEY (winner_id) REFERENCES players(id),
						FOREIGN KEY (next_match_id) REFERENCES matches(id)
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_tournament_id ON matches(tournament_id);
					CREATE INDEX IF NOT EXISTS idx_matches_tournament_round ON matches(tournament_id, round);
					CREATE INDEX IF NOT EXISTS idx_matches_player1_id ON matches(player1_id);
					CREATE INDEX IF NOT EXISTS idx_matches_player2_id ON matches(player2_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_06_06_000000_create_rating_history_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_history (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						match_id BIGINT NOT NULL,
						rating_before FLOAT NOT NULL,
						rating_after FLOAT NOT NULL,
						rating_change FLOAT NOT NULL,
						opponent_id BIGINT,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
						FOREIGN KEY (opponent_id) REFERENCES players(id)
					);
					CREATE INDEX IF NOT EXISTS idx_rating_history_deleted_at ON rating_history(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_rating_history_player_id ON rating_history(player_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_match_id ON rating_history(match_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS rating_history CASCADE").Error
			},
		},
	}
}

package migrations

import "database/sql"

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(32) NOT NULL UNIQUE,
		email VARCHAR(128) NOT NULL UNIQUE,
		name VARCHAR(64) NOT NULL,
		password VARCHAR(128) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS others (
		id INT AUTO_INCREMENT PRIMARY KEY,
		owner VARCHAR(32) NOT NULL,
		name VARCHAR(64) NOT NULL,
		balance DECIMAL(12,2) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_owner_name (owner, name)
	);`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		owner VARCHAR(32) NOT NULL,
		lend BOOLEAN NOT NULL DEFAULT FALSE,
		amount DECIMAL(12,2) NOT NULL,
		to_name VARCHAR(64) NOT NULL,
		description TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_owner_created (owner, created_at)
	);`,
}

// AutoMigrate creates the schema if it does not exist. The UNIQUE(owner, name)
// key on others is what makes counterparty find-or-create race free.
func AutoMigrate(db *sql.DB) error {
	for _, query := range tables {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

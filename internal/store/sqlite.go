package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        user_id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS chats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        message TEXT NOT NULL,
        reply TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (user_id) REFERENCES users (user_id)
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

func (s *SQLiteStore) GetUserByID(ctx context.Context, userID string) (*User, error) {
	var user User
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, name, email, created_at FROM users WHERE user_id = ?",
		userID).Scan(&user.UserID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, userID, name, email string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (user_id, name, email) VALUES (?, ?, ?)",
		userID, name, email)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Exchange methods

func (s *SQLiteStore) CreateExchange(ctx context.Context, userID, message, reply string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chats (user_id, message, reply) VALUES (?, ?, ?)",
		userID, message, reply)
	if err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// GetRecentExchanges returns the n most recent exchanges for a user,
// oldest to newest. The id column breaks ties between rows created
// within the same timestamp second.
func (s *SQLiteStore) GetRecentExchanges(ctx context.Context, userID string, n int) ([]ChatExchange, error) {
	query := `
        SELECT id, user_id, message, reply, created_at
        FROM (
            SELECT id, user_id, message, reply, created_at
            FROM chats
            WHERE user_id = ?
            ORDER BY created_at DESC, id DESC
            LIMIT ?
        )
        ORDER BY created_at ASC, id ASC
    `

	rows, err := s.db.QueryContext(ctx, query, userID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []ChatExchange
	for rows.Next() {
		var ex ChatExchange
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Message, &ex.Reply, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange row: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchange rows: %w", err)
	}
	return exchanges, nil
}

package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/model"

	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed UserStore. database/sql serializes writes,
// so the list and detail services can share one handle.
type DB struct {
	conn *sql.DB
}

// Ensure DB implements UserStore.
var _ UserStore = (*DB)(nil)

// DefaultPath returns the database location under the user cache
// directory, creating parent directories as needed.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(cacheDir, "ghusers")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "users.db"), nil
}

// Open opens (or creates) the database at path. ":memory:" gives an
// ephemeral store, which the tests use.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	// WAL keeps reads from blocking behind writes when the list and
	// detail services interleave.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	// seq preserves insertion order, which is the list ordering
	// contract: cache rows replay in exactly the order pages arrived.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         INTEGER NOT NULL,
			login      TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			html_url   TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS user_details (
			login      TEXT PRIMARY KEY,
			avatar_url TEXT NOT NULL DEFAULT '',
			html_url   TEXT NOT NULL DEFAULT '',
			location   TEXT,
			followers  INTEGER NOT NULL DEFAULT 0,
			following  INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return &StorageError{Op: "migrate", Err: err}
	}
	return nil
}

// SaveUsers appends the page in order inside one transaction.
func (db *DB) SaveUsers(ctx context.Context, users []model.UserSummary) error {
	if len(users) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "save users", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO users (id, login, avatar_url, html_url) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return &StorageError{Op: "save users", Err: err}
	}
	defer stmt.Close()

	for _, u := range users {
		if _, err := stmt.ExecContext(ctx, u.ID, u.Login, u.AvatarURL, u.HTMLURL); err != nil {
			return &StorageError{Op: "save users", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "save users", Err: err}
	}

	log.Debug("cached users", "count", len(users))
	return nil
}

// Users returns all persisted summaries in insertion order. Rows that
// lost their identity fields are skipped rather than surfaced as
// partially-populated records.
func (db *DB) Users(ctx context.Context) ([]model.UserSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, login, avatar_url, html_url FROM users ORDER BY seq`)
	if err != nil {
		return nil, &StorageError{Op: "fetch users", Err: err}
	}
	defer rows.Close()

	var users []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Login, &u.AvatarURL, &u.HTMLURL); err != nil {
			return nil, &StorageError{Op: "fetch users", Err: err}
		}
		if u.ID == 0 || u.Login == "" {
			log.Warn("skipping malformed cached user", "id", u.ID)
			continue
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "fetch users", Err: err}
	}

	return users, nil
}

// SaveUserDetail upserts the record for detail.Login.
func (db *DB) SaveUserDetail(ctx context.Context, detail model.UserDetail) error {
	var location sql.NullString
	if detail.Location != nil {
		location = sql.NullString{String: *detail.Location, Valid: true}
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_details
		 (login, avatar_url, html_url, location, followers, following)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		detail.Login, detail.AvatarURL, detail.HTMLURL, location,
		detail.Followers, detail.Following)
	if err != nil {
		return &StorageError{Op: "save user detail", Err: err}
	}

	log.Debug("cached user detail", "login", detail.Login)
	return nil
}

// UserDetail returns the cached record for login, or (nil, nil) when
// none exists or the stored row is unusable.
func (db *DB) UserDetail(ctx context.Context, login string) (*model.UserDetail, error) {
	var d model.UserDetail
	var location sql.NullString

	err := db.conn.QueryRowContext(ctx,
		`SELECT login, avatar_url, html_url, location, followers, following
		 FROM user_details WHERE login = ?`, login).
		Scan(&d.Login, &d.AvatarURL, &d.HTMLURL, &location, &d.Followers, &d.Following)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "fetch user detail", Err: err}
	}

	if d.Login == "" {
		log.Warn("skipping malformed cached detail", "login", login)
		return nil, nil
	}
	if location.Valid {
		d.Location = &location.String
	}

	return &d, nil
}

// Clear removes all cached summaries and details.
func (db *DB) Clear(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM user_details`); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

// Stats returns the number of cached summaries and detail records.
func (db *DB) Stats(ctx context.Context) (users, details int, err error) {
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return 0, 0, &StorageError{Op: "stats", Err: err}
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_details`).Scan(&details); err != nil {
		return 0, 0, &StorageError{Op: "stats", Err: err}
	}
	return users, details, nil
}

package property

import (
	"context"
	"database/sql"

	// SQLite driver (required for database/sql registration).
	_ "github.com/mattn/go-sqlite3"
)

// Store persists properties and user associations in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at the given path.
// Creates the database and tables if they don't exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS properties (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		street_address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		formatted_address TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(street_address, city, state, postal_code)
	);

	CREATE TABLE IF NOT EXISTS property_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		property_id INTEGER NOT NULL REFERENCES properties(id),
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, property_id, role)
	);

	CREATE INDEX IF NOT EXISTS ix_property_users_user_id ON property_users(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AddProperty inserts a property record and returns its id.
func (s *Store) AddProperty(ctx context.Context, rec Record) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (street_address, city, state, postal_code, formatted_address)
		VALUES (?, ?, ?, ?, ?)`,
		rec.StreetAddress, rec.City, rec.State, rec.PostalCode, rec.FormattedAddress,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Associate links a user to a property with the given role.
func (s *Store) Associate(ctx context.Context, userID, propertyID int64, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO property_users (user_id, property_id, role, is_active)
		VALUES (?, ?, ?, 1)`,
		userID, propertyID, role,
	)
	return err
}

// Deactivate terminates an association, hiding the property from the agent.
func (s *Store) Deactivate(ctx context.Context, userID, propertyID int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE property_users SET is_active = 0
		WHERE user_id = ? AND property_id = ?`,
		userID, propertyID,
	)
	return err
}

// ActiveProperties returns the projections of every property the user has
// an active association with, ordered by property id so that resolution is
// deterministic.
func (s *Store) ActiveProperties(ctx context.Context, userID int64) ([]Property, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.city, p.state, p.formatted_address
		FROM properties p
		JOIN property_users pu ON p.id = pu.property_id
		WHERE pu.user_id = ? AND pu.is_active = 1
		ORDER BY p.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.City, &rec.State, &rec.FormattedAddress); err != nil {
			return nil, err
		}
		out = append(out, rec.Project())
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/cargohub/cargokb/internal/cargo"
)

// ErrNotFound is returned when a user or cargo does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists users, cargos and tracking history in sqlite. It is the
// single source of truth for cargo state; handlers read a copy, apply a pure
// transition and write the copy back.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cargo database and applies pragmas.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cargo db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the tables if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			member_since DATE
		);`,
		`CREATE TABLE IF NOT EXISTS cargos (
			tracking_number TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL,
			location TEXT,
			last_update DATETIME,
			estimated_delivery DATE,
			description TEXT,
			weight TEXT,
			dimensions TEXT,
			carrier TEXT,
			insurance TEXT,
			return_reason TEXT,
			FOREIGN KEY (user_id) REFERENCES users (id)
		);`,
		`CREATE TABLE IF NOT EXISTS tracking_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tracking_number TEXT NOT NULL,
			date DATETIME NOT NULL,
			status TEXT NOT NULL,
			location TEXT,
			FOREIGN KEY (tracking_number) REFERENCES cargos (tracking_number)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// PutUser inserts or replaces a user row. Cargo records attached to the user
// value are not written; use PutCargo for those.
func (s *Store) PutUser(ctx context.Context, u cargo.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, member_since) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
		 phone=excluded.phone, member_since=excluded.member_since`,
		u.ID, u.Name, u.Email, u.Phone, u.MemberSince)
	if err != nil {
		return fmt.Errorf("put user %s: %w", u.ID, err)
	}
	return nil
}

// GetUser reads a user with all their cargos and tracking history.
func (s *Store) GetUser(ctx context.Context, id string) (*cargo.User, error) {
	var u cargo.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(member_since, '')
		 FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.MemberSince)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT tracking_number FROM cargos WHERE user_id = ? ORDER BY tracking_number`, id)
	if err != nil {
		return nil, fmt.Errorf("list cargos for %s: %w", id, err)
	}
	defer rows.Close()

	var trackingNumbers []string
	for rows.Next() {
		var tn string
		if err := rows.Scan(&tn); err != nil {
			return nil, fmt.Errorf("scan cargo row: %w", err)
		}
		trackingNumbers = append(trackingNumbers, tn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cargos for %s: %w", id, err)
	}

	for _, tn := range trackingNumbers {
		c, err := s.GetCargo(ctx, tn)
		if err != nil {
			return nil, err
		}
		u.Cargos = append(u.Cargos, *c)
	}
	return &u, nil
}

// GetCargo reads one cargo by tracking number, history included, ordered by
// event date.
func (s *Store) GetCargo(ctx context.Context, trackingNumber string) (*cargo.Cargo, error) {
	var c cargo.Cargo
	err := s.db.QueryRowContext(ctx,
		`SELECT tracking_number, user_id, status,
		        COALESCE(location, ''), COALESCE(last_update, ''), COALESCE(estimated_delivery, ''),
		        COALESCE(description, ''), COALESCE(weight, ''), COALESCE(dimensions, ''),
		        COALESCE(carrier, ''), COALESCE(insurance, ''), COALESCE(return_reason, '')
		 FROM cargos WHERE tracking_number = ?`, trackingNumber).
		Scan(&c.TrackingNumber, &c.UserID, &c.Status,
			&c.Location, &c.LastUpdate, &c.EstimatedDelivery,
			&c.Description, &c.Weight, &c.Dimensions,
			&c.Carrier, &c.Insurance, &c.ReturnReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cargo %s", ErrNotFound, trackingNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("get cargo %s: %w", trackingNumber, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, status, COALESCE(location, '')
		 FROM tracking_history WHERE tracking_number = ? ORDER BY date`, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("get history %s: %w", trackingNumber, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h cargo.HistoryEntry
		if err := rows.Scan(&h.Date, &h.Status, &h.Location); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		c.History = append(c.History, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history %s: %w", trackingNumber, err)
	}
	return &c, nil
}

// PutCargo writes a full cargo record, replacing the row and its tracking
// history in one transaction.
func (s *Store) PutCargo(ctx context.Context, c cargo.Cargo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put cargo: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cargos (tracking_number, user_id, status, location, last_update,
		                     estimated_delivery, description, weight, dimensions,
		                     carrier, insurance, return_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(tracking_number) DO UPDATE SET
		   user_id=excluded.user_id, status=excluded.status, location=excluded.location,
		   last_update=excluded.last_update, estimated_delivery=excluded.estimated_delivery,
		   description=excluded.description, weight=excluded.weight,
		   dimensions=excluded.dimensions, carrier=excluded.carrier,
		   insurance=excluded.insurance, return_reason=excluded.return_reason`,
		c.TrackingNumber, c.UserID, c.Status, c.Location, c.LastUpdate,
		c.EstimatedDelivery, c.Description, c.Weight, c.Dimensions,
		c.Carrier, c.Insurance, c.ReturnReason)
	if err != nil {
		return fmt.Errorf("put cargo %s: %w", c.TrackingNumber, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tracking_history WHERE tracking_number = ?`, c.TrackingNumber); err != nil {
		return fmt.Errorf("clear history %s: %w", c.TrackingNumber, err)
	}
	for _, h := range c.History {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tracking_history (tracking_number, date, status, location) VALUES (?, ?, ?, ?)`,
			c.TrackingNumber, h.Date, h.Status, h.Location); err != nil {
			return fmt.Errorf("put history %s: %w", c.TrackingNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put cargo %s: %w", c.TrackingNumber, err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/jask/agenda/internal/database"
)

// ContactRepo handles contacts stored in sqlite.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// FindAll returns every contact in insertion order.
func (r *ContactRepo) FindAll(ctx context.Context) ([]Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, email, created_at FROM contacts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts c, assigning a new ID when c.ID is empty.
func (r *ContactRepo) Create(ctx context.Context, c Contact) (Contact, error) {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO contacts(id, name, phone, email, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, c.ID, c.Name, c.Phone, c.Email, database.Now())
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return Contact{}, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		return Contact{}, err
	}
	stored, err := r.Get(ctx, c.ID)
	if err != nil {
		return Contact{}, err
	}
	if stored == nil {
		return Contact{}, fmt.Errorf("contact %s missing after insert", c.ID)
	}
	return *stored, nil
}

// Delete removes the contact with id. Unknown ids are ignored.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return err
}

// DeleteAll removes every contact.
func (r *ContactRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts`)
	return err
}

func (r *ContactRepo) Get(ctx context.Context, id string) (*Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, phone, email, created_at FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row scanner) (Contact, error) {
	var c Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		return Contact{}, err
	}
	return c, nil
}

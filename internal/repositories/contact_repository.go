package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"freetrack/internal/models"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, owner_id, client_id, first_name, last_name, email, phone, role, notes, created_at`

func scanContact(s interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := s.Scan(&c.ID, &c.OwnerID, &c.ClientID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Role, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(contact *models.Contact) (int64, error) {
	const q = `
                INSERT INTO contacts (owner_id, client_id, first_name, last_name, email, phone, role, notes, created_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                RETURNING id
        `
	var id int64
	err := r.db.QueryRow(q,
		contact.OwnerID, contact.ClientID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Role, contact.Notes, contact.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create contact: %w", err)
	}
	return id, nil
}

func (r *ContactRepository) Update(contact *models.Contact) error {
	const q = `
                UPDATE contacts
                SET client_id=$1, first_name=$2, last_name=$3, email=$4, phone=$5, role=$6, notes=$7
                WHERE id=$8
        `
	_, err := r.db.Exec(q,
		contact.ClientID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Role, contact.Notes, contact.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) GetByID(id int) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Delete(id int) error {
	if _, err := r.db.Exec(`DELETE FROM contacts WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) ListByOwner(ownerID, limit, offset int) ([]*models.Contact, error) {
	const q = `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id=$1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`
	return r.queryMany(q, ownerID, limit, offset)
}

func (r *ContactRepository) ListByClient(clientID int) ([]*models.Contact, error) {
	const q = `SELECT ` + contactColumns + ` FROM contacts WHERE client_id=$1 ORDER BY last_name, first_name`
	return r.queryMany(q, clientID)
}

func (r *ContactRepository) FindByName(ownerID int, name string) ([]*models.Contact, error) {
	const q = `
                SELECT ` + contactColumns + `
                FROM contacts
                WHERE owner_id=$1 AND (LOWER(first_name) LIKE $2 OR LOWER(last_name) LIKE $2)
                ORDER BY last_name, first_name
        `
	return r.queryMany(q, ownerID, "%"+strings.ToLower(name)+"%")
}

func (r *ContactRepository) queryMany(q string, args ...any) ([]*models.Contact, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var res []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

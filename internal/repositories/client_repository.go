package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"freetrack/internal/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(client *models.Client) (int64, error) {
	const q = `
                INSERT INTO clients (owner_id, name, city, website, notes, created_at)
                VALUES ($1, $2, $3, $4, $5, $6)
                RETURNING id
        `
	var id int64
	if err := r.db.QueryRow(q, client.OwnerID, client.Name, client.City, client.Website, client.Notes, client.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	return id, nil
}

func (r *ClientRepository) Update(client *models.Client) error {
	const q = `
                UPDATE clients
                SET name=$1, city=$2, website=$3, notes=$4
                WHERE id=$5
        `
	if _, err := r.db.Exec(q, client.Name, client.City, client.Website, client.Notes, client.ID); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(id int) (*models.Client, error) {
	const q = `
                SELECT id, owner_id, name, city, website, notes, created_at
                FROM clients
                WHERE id=$1
        `
	var c models.Client
	if err := r.db.QueryRow(q, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.City, &c.Website, &c.Notes, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) Delete(id int) error {
	if _, err := r.db.Exec(`DELETE FROM clients WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepository) ListByOwner(ownerID, limit, offset int) ([]*models.Client, error) {
	const q = `
                SELECT id, owner_id, name, city, website, notes, created_at
                FROM clients
                WHERE owner_id=$1
                ORDER BY created_at DESC
                LIMIT $2 OFFSET $3
        `
	rows, err := r.db.Query(q, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var res []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.City, &c.Website, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (r *ClientRepository) FindByName(ownerID int, name string) ([]*models.Client, error) {
	const q = `
                SELECT id, owner_id, name, city, website, notes, created_at
                FROM clients
                WHERE owner_id=$1 AND LOWER(name) LIKE $2
                ORDER BY created_at DESC
        `
	rows, err := r.db.Query(q, ownerID, "%"+strings.ToLower(name)+"%")
	if err != nil {
		return nil, fmt.Errorf("find clients by name: %w", err)
	}
	defer rows.Close()

	var res []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.City, &c.Website, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

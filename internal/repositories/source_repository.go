package repositories

import (
	"database/sql"
	"fmt"

	"freetrack/internal/models"
)

type SourceRepository struct {
	db *sql.DB
}

func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Create(source *models.Source) (int64, error) {
	const q = `
                INSERT INTO sources (owner_id, name, kind, link, created_at)
                VALUES ($1, $2, $3, $4, $5)
                RETURNING id
        `
	var id int64
	if err := r.db.QueryRow(q, source.OwnerID, source.Name, source.Kind, source.Link, source.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create source: %w", err)
	}
	return id, nil
}

func (r *SourceRepository) Update(source *models.Source) error {
	const q = `UPDATE sources SET name=$1, kind=$2, link=$3 WHERE id=$4`
	if _, err := r.db.Exec(q, source.Name, source.Kind, source.Link, source.ID); err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	return nil
}

func (r *SourceRepository) GetByID(id int) (*models.Source, error) {
	const q = `SELECT id, owner_id, name, kind, link, created_at FROM sources WHERE id=$1`
	var s models.Source
	if err := r.db.QueryRow(q, id).Scan(&s.ID, &s.OwnerID, &s.Name, &s.Kind, &s.Link, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get source: %w", err)
	}
	return &s, nil
}

func (r *SourceRepository) Delete(id int) error {
	if _, err := r.db.Exec(`DELETE FROM sources WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}

func (r *SourceRepository) ListByOwner(ownerID, limit, offset int) ([]*models.Source, error) {
	const q = `
                SELECT id, owner_id, name, kind, link, created_at
                FROM sources
                WHERE owner_id=$1
                ORDER BY created_at DESC
                LIMIT $2 OFFSET $3
        `
	rows, err := r.db.Query(q, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var res []*models.Source
	for rows.Next() {
		var s models.Source
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Kind, &s.Link, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &s)
	}
	return res, rows.Err()
}

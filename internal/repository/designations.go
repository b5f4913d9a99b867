package repository

import (
	"context"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

func (r *Repository) CreateDesignation(d *domain.Designation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO designations (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name).Scan(&d.ID, &d.CreatedAt, &d.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDesignationByID(id int64) (*domain.Designation, error) {
	query := `
		SELECT name, created_at, version FROM designations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	d := &domain.Designation{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&d.Name, &d.CreatedAt, &d.Version); err != nil {
		return nil, err
	}

	return d, nil
}

func (r *Repository) GetAllDesignations() ([]*domain.Designation, error) {
	query := `
		SELECT id, name, created_at, version FROM designations ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designations := make([]*domain.Designation, 0)
	for rows.Next() {
		d := &domain.Designation{}
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.Version); err != nil {
			return nil, err
		}
		designations = append(designations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return designations, nil
}

func (r *Repository) UpdateDesignation(d *domain.Designation) error {
	query := `
		UPDATE designations
		SET name = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name, d.ID, d.Version).Scan(&d.Version); err != nil {
		return err
	}

	return nil
}

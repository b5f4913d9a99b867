// Package repository persists users, tasks, designations and attendance in
// PostgreSQL through database/sql.
package repository

import (
	"database/sql"

	"github.com/zovio-dev/hrms/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

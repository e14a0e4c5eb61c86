package repository

import (
	"database/sql"
	"strings"

	"github.com/northwind-labs/employee-directory/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

// NewRepository fails fast when the database handle is missing or the
// configured connection string is blank, so a misconfigured service dies at
// startup instead of on the first query.
func NewRepository(cfg *config.Config, dbpool *sql.DB) (*Repository, error) {
	if cfg == nil || dbpool == nil || strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, ErrInvalidConfig
	}

	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}, nil
}

package dbconfig

import (
	"context"
	"database/sql"

	"github.com/tradeforge/swap-lib/dbconfig/models"
)

// GetChains returns all chains from the database, optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - activeOnly: a boolean flag to filter only active chains.
//
// Returns:
// - []models.Chain: a slice of chain models.
// - error: an error if the database operation fails.
func (r *DBConfig) GetChains(ctx context.Context, activeOnly bool) ([]models.Chain, error) {
	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
      SELECT
          id,
          chain_id,
          name,
          active,
          created_at,
          updated_at
      FROM chains
  `

	var args []interface{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}

	query += " ORDER BY chain_id ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var chains []models.Chain
	for rows.Next() {
		var chain models.Chain
		var name sql.NullString

		err := rows.Scan(
			&chain.ID,
			&chain.ChainID,
			&name,
			&chain.Active,
			&chain.CreatedAt,
			&chain.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if name.Valid {
			chain.Name = name.String
		}

		chains = append(chains, chain)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return chains, nil
}

// GetChainByID returns a chain by its identifier or an error if not found.
func (r *DBConfig) GetChainByID(ctx context.Context, chainID string) (*models.Chain, error) {
	if chainID == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	var chain models.Chain
	var name sql.NullString

	err = db.QueryRowContext(ctx, `
       SELECT
           id,
           chain_id,
           name,
           active,
           created_at,
           updated_at
       FROM chains
       WHERE chain_id = $1
    `, chainID).Scan(
		&chain.ID,
		&chain.ChainID,
		&name,
		&chain.Active,
		&chain.CreatedAt,
		&chain.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrChainNotFound
	}

	if err != nil {
		return nil, ErrDatabaseConnect
	}

	if name.Valid {
		chain.Name = name.String
	}

	return &chain, nil
}

package dbconfig

import (
	"context"
	"database/sql"

	"github.com/tradeforge/swap-lib/dbconfig/models"
)

// GetEndpointsByChain returns all RPC endpoints for a given chain from the database, optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the chain identifier.
// - activeOnly: a boolean flag to filter only active endpoints.
//
// Returns:
// - []models.Endpoint: a slice of endpoint models.
// - error: an error if the database operation fails.
func (r *DBConfig) GetEndpointsByChain(ctx context.Context, chainID string, activeOnly bool) ([]models.Endpoint, error) {
	if chainID == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
  		SELECT
  			id,
			chain_id,
			url,
			provider,
			speed_class,
			active,
			created_at,
			updated_at
		FROM rpc_endpoints
		WHERE chain_id = $1
   `

	args := []interface{}{chainID}

	if activeOnly {
		query += " AND active = $2"
		args = append(args, true)
	}

	query += " ORDER BY speed_class ASC, created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var endpoints []models.Endpoint
	for rows.Next() {
		var endpoint models.Endpoint
		var provider sql.NullString
		var speedClass sql.NullString

		err := rows.Scan(
			&endpoint.ID,
			&endpoint.ChainID,
			&endpoint.URL,
			&provider,
			&speedClass,
			&endpoint.Active,
			&endpoint.CreatedAt,
			&endpoint.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if provider.Valid {
			endpoint.Provider = provider.String
		}
		if speedClass.Valid {
			endpoint.SpeedClass = speedClass.String
		}

		endpoints = append(endpoints, endpoint)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return endpoints, nil
}

// GetEndpointSets groups a chain's active endpoints by speed class. The result
// feeds endpoint set construction at startup: one named set per speed class,
// each holding the URLs in inventory order.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the chain identifier.
//
// Returns:
// - map[string][]string: endpoint URLs keyed by speed class.
// - error: an error if the database operation fails.
func (r *DBConfig) GetEndpointSets(ctx context.Context, chainID string) (map[string][]string, error) {
	endpoints, err := r.GetEndpointsByChain(ctx, chainID, true)
	if err != nil {
		return nil, err
	}

	sets := make(map[string][]string)
	for _, endpoint := range endpoints {
		if endpoint.SpeedClass == "" || endpoint.URL == "" {
			continue
		}
		sets[endpoint.SpeedClass] = append(sets[endpoint.SpeedClass], endpoint.URL)
	}

	return sets, nil
}

package revenue

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tradeforge/swap-lib/common/types"
)

// Ledger records collected platform fees in Postgres. Recording is
// fire-and-forget from the trade flow: a ledger failure never fails a trade
// that already executed on chain.
type Ledger struct {
	dbConnStr string
}

// NewLedger creates a new Ledger instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *Ledger: a pointer to the newly created Ledger instance.
// - error: an error if the creation of the Ledger instance fails.
func NewLedger(connStr string) (*Ledger, error) {
	if connStr == "" {
		return nil, errors.New("empty database connection string")
	}
	return &Ledger{
		dbConnStr: connStr,
	}, nil
}

// FeeRecord is one collected platform fee.
type FeeRecord struct {
	TradeID   string
	UserID    string
	ChainID   types.ChainID
	TierName  types.TierName
	FeeBps    uint32
	FeeWei    string
	GrossWei  string
	TxHash    string
	CreatedAt time.Time
}

// RecordFee inserts a fee record for a confirmed trade. The insert is
// idempotent on trade id, so retrying after a transient failure cannot
// double-count revenue.
//
// Parameters:
// - ctx: the context for managing the request.
// - record: the fee record to persist.
//
// Returns:
// - error: an error if the database operation fails.
func (l *Ledger) RecordFee(ctx context.Context, record *FeeRecord) error {
	db, err := sql.Open("postgres", l.dbConnStr)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
       INSERT INTO fee_ledger (
           trade_id,
           user_id,
           chain_id,
           tier_name,
           fee_bps,
           fee_wei,
           gross_wei,
           tx_hash,
           created_at
       ) VALUES (
           $1, $2, $3, $4, $5, $6, $7, $8, $9
       )
       ON CONFLICT (trade_id) DO NOTHING`,
		record.TradeID,
		record.UserID,
		string(record.ChainID),
		string(record.TierName),
		record.FeeBps,
		record.FeeWei,
		record.GrossWei,
		record.TxHash,
		record.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert fee record")
	}

	return nil
}

// TotalFees sums the recorded fees for a chain since the given time. The sum
// is returned as a wei-denominated numeric string.
func (l *Ledger) TotalFees(ctx context.Context, chainID types.ChainID, since time.Time) (string, error) {
	db, err := sql.Open("postgres", l.dbConnStr)
	if err != nil {
		return "", errors.Wrap(err, "failed to connect to database")
	}
	defer db.Close()

	var total sql.NullString
	err = db.QueryRowContext(ctx, `
       SELECT SUM(fee_wei::numeric)
       FROM fee_ledger
       WHERE chain_id = $1 AND created_at >= $2
    `, string(chainID), since).Scan(&total)
	if err != nil {
		return "", errors.Wrap(err, "failed to sum fee records")
	}

	if !total.Valid {
		return "0", nil
	}
	return total.String, nil
}

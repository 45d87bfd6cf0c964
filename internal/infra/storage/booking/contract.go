package booking

import (
	"context"
	"database/sql"

	"github.com/studiokita/booking-service/pkg/dbmetrics"
)

// Executors come from dbmetrics so the repository works both with a plain
// *sql.DB and with the metrics-wrapped pool.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

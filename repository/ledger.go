package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hisaab/hisaab-backend/ledger"
)

type LedgerRepoMysql struct {
	db *sql.DB
}

func NewLedgerRepoMysql(db *sql.DB) *LedgerRepoMysql {
	return &LedgerRepoMysql{db: db}
}

// Apply executes a ledger plan inside one serializable transaction:
// counterparty upserts, then balance increments, then the transaction append.
// No other ledger update for the same counterparty can interleave between the
// increments, and a failure anywhere rolls the whole update back.
func (l *LedgerRepoMysql) Apply(ctx context.Context, plan *ledger.Plan) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range plan.Deltas {
		statement := "INSERT INTO others(owner, name, balance) VALUES(?, ?, 0) ON DUPLICATE KEY UPDATE name = name"
		if _, err := tx.ExecContext(ctx, statement, plan.Entry.Owner, d.Name); err != nil {
			return fmt.Errorf("upserting counterparty %q: %w", d.Name, err)
		}
	}

	for _, d := range plan.Deltas {
		statement := "UPDATE others SET balance = balance + ? WHERE owner = ? AND name = ?"
		if _, err := tx.ExecContext(ctx, statement, d.Amount, plan.Entry.Owner, d.Name); err != nil {
			return fmt.Errorf("adjusting balance of %q: %w", d.Name, err)
		}
	}

	statement := "INSERT INTO transactions(owner, lend, amount, to_name, description) VALUES(?, ?, ?, ?, ?)"
	result, err := tx.ExecContext(ctx, statement,
		plan.Entry.Owner, plan.Entry.Lend, plan.Entry.Amount, plan.Entry.To, plan.Entry.Description)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}
	numRows, err := result.RowsAffected()
	if err != nil || numRows != 1 {
		return fmt.Errorf("error appending transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error in ledger update: %w", err)
	}
	return nil
}

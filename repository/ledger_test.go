package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/hisaab/hisaab-backend/ledger"
)

var insertTransaction = regexp.QuoteMeta("INSERT INTO transactions(owner, lend, amount, to_name, description) VALUES(?, ?, ?, ?, ?)")

func TestLedgerRepoMysql_Apply(t *testing.T) {
	t.Run("lend plan commits upsert, increment and append together", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := NewLedgerRepoMysql(db)

		plan := &ledger.Plan{
			Entry:  ledger.Entry{Owner: "alice", Lend: true, Amount: 100, To: "bob", Description: "lunch"},
			Deltas: []ledger.Delta{{Name: "bob", Amount: 100}},
		}

		mock.ExpectBegin()
		mock.ExpectExec(upsertOther).WithArgs("alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(adjustBalance).WithArgs(100.0, "alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertTransaction).WithArgs("alice", true, 100.0, "bob", "lunch").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Apply(context.Background(), plan))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("indirect plan touches both counterparties", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := NewLedgerRepoMysql(db)

		desc := "bob paid ₹50 to carol"
		plan := &ledger.Plan{
			Entry: ledger.Entry{Owner: "alice", Lend: false, Amount: 0, To: ledger.IndirectPaymentLabel, Description: desc},
			Deltas: []ledger.Delta{
				{Name: "bob", Amount: -50},
				{Name: "carol", Amount: 50},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(upsertOther).WithArgs("alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(upsertOther).WithArgs("alice", "carol").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(adjustBalance).WithArgs(-50.0, "alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(adjustBalance).WithArgs(50.0, "alice", "carol").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertTransaction).WithArgs("alice", false, 0.0, ledger.IndirectPaymentLabel, desc).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Apply(context.Background(), plan))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain plan only appends", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := NewLedgerRepoMysql(db)

		plan := &ledger.Plan{
			Entry: ledger.Entry{Owner: "alice", Lend: false, Amount: 250, To: "Lunch", Description: "sandwich"},
		}

		mock.ExpectBegin()
		mock.ExpectExec(insertTransaction).WithArgs("alice", false, 250.0, "Lunch", "sandwich").
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Apply(context.Background(), plan))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed increment rolls the whole update back", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := NewLedgerRepoMysql(db)

		plan := &ledger.Plan{
			Entry:  ledger.Entry{Owner: "alice", Lend: true, Amount: 100, To: "bob", Description: ""},
			Deltas: []ledger.Delta{{Name: "bob", Amount: 100}},
		}

		mock.ExpectBegin()
		mock.ExpectExec(upsertOther).WithArgs("alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(adjustBalance).WithArgs(100.0, "alice", "bob").
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		err := repo.Apply(context.Background(), plan)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed append rolls the whole update back", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := NewLedgerRepoMysql(db)

		plan := &ledger.Plan{
			Entry:  ledger.Entry{Owner: "alice", Lend: true, Amount: 100, To: "bob", Description: ""},
			Deltas: []ledger.Delta{{Name: "bob", Amount: 100}},
		}

		mock.ExpectBegin()
		mock.ExpectExec(upsertOther).WithArgs("alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(adjustBalance).WithArgs(100.0, "alice", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertTransaction).WithArgs("alice", true, 100.0, "bob", "").
			WillReturnError(errors.New("table gone"))
		mock.ExpectRollback()

		err := repo.Apply(context.Background(), plan)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

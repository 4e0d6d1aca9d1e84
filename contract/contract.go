package contract

import (
	"context"

	"github.com/hisaab/hisaab-backend/ledger"
	"github.com/hisaab/hisaab-backend/model"
)

type UserRepo interface {
	Create(user *model.User) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdatePassword(username, passwordHash string) error
	UpdateName(username, name string) (*model.User, error)
}

type OtherRepo interface {
	// FindOrCreate looks up the counterparty by (owner, name) and creates it
	// with balance 0 when absent. Concurrent calls with the same key never
	// create two rows.
	FindOrCreate(owner, name string) (*model.Other, error)
	// AdjustBalance adds delta to the counterparty's running balance as a
	// single atomic increment.
	AdjustBalance(owner, name string, delta float64) error
	FindByOwner(owner string) ([]model.Other, error)
	FindNonZero(owner string) ([]model.Other, error)
}

type TransactionRepo interface {
	// FindByOwner returns the owner's transactions, newest first.
	FindByOwner(owner string) ([]model.Transaction, error)
}

// LedgerRepo applies one ledger plan as a single atomic unit of work: either
// every counterparty upsert, balance increment and the appended transaction
// become visible, or none do.
type LedgerRepo interface {
	Apply(ctx context.Context, plan *ledger.Plan) error
}

// Package ledger implements the ledger-update algorithm: given a recording
// request it decides which counterparty balances move and which transaction
// row is appended. It never touches storage itself, so every rule here can be
// checked without a database.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Me is the sentinel counterparty name standing for the owning user.
	Me = "me"

	// IndirectPaymentLabel marks settlements between two third parties the
	// owning user records as a bystander.
	IndirectPaymentLabel = "Indirect Payment"
)

var (
	ErrMissingTo     = errors.New("missing 'to' counterparty")
	ErrMissingFrom   = errors.New("missing 'From' in lend transaction")
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// Delta is a signed balance adjustment for one counterparty of the owner.
type Delta struct {
	Name   string
	Amount float64
}

// Entry is the transaction row a plan appends.
type Entry struct {
	Owner       string
	Lend        bool
	Amount      float64
	To          string
	Description string
}

// Plan is one logical ledger update: exactly one appended transaction and
// zero, one or two balance deltas. For indirect payments the two deltas sum
// to zero, so applying a plan conserves total ledger value.
type Plan struct {
	Entry  Entry
	Deltas []Delta
}

// BuildPlan validates the recording request and computes the ledger update
// for it. Validation happens before any store access, so a rejected request
// leaves no partial state behind.
//
// Lend mode lowercases from/to once at entry; the lowercased values are used
// both for the "me" comparison and as the stored lookup keys. Plain mode
// keeps to as given.
func BuildPlan(owner, from, to string, amount float64, description string, lend bool) (*Plan, error) {
	if to == "" {
		return nil, ErrMissingTo
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !lend {
		return &Plan{
			Entry: Entry{Owner: owner, Lend: false, Amount: amount, To: to, Description: description},
		}, nil
	}

	if from == "" {
		return nil, ErrMissingFrom
	}

	from = strings.ToLower(from)
	to = strings.ToLower(to)

	switch {
	case from == Me && to == Me:
		// Self-transfer: recorded, but no debt is created.
		return &Plan{
			Entry: Entry{Owner: owner, Lend: false, Amount: amount, To: to, Description: description},
		}, nil

	case from == Me:
		// The user lent amount to `to`, so `to` owes the user more.
		return &Plan{
			Entry:  Entry{Owner: owner, Lend: true, Amount: amount, To: to, Description: description},
			Deltas: []Delta{{Name: to, Amount: amount}},
		}, nil

	case to == Me:
		// The user borrowed amount from `from`; its net-owed balance drops.
		return &Plan{
			Entry:  Entry{Owner: owner, Lend: true, Amount: -amount, To: from, Description: description},
			Deltas: []Delta{{Name: from, Amount: -amount}},
		}, nil

	default:
		// Two third parties settled between themselves; the owner is only
		// recording it. The deltas cancel out.
		desc := fmt.Sprintf("%s paid ₹%s to %s", from, formatAmount(amount), to)
		return &Plan{
			Entry: Entry{Owner: owner, Lend: false, Amount: 0, To: IndirectPaymentLabel, Description: desc},
			Deltas: []Delta{
				{Name: from, Amount: -amount},
				{Name: to, Amount: amount},
			},
		}, nil
	}
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

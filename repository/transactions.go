package repository

import (
	"database/sql"

	"github.com/hisaab/hisaab-backend/model"
)

type TransactionRepoMysql struct {
	db *sql.DB
}

func NewTransactionRepoMysql(db *sql.DB) *TransactionRepoMysql {
	return &TransactionRepoMysql{db: db}
}

func (t *TransactionRepoMysql) FindByOwner(owner string) ([]model.Transaction, error) {
	statement := `SELECT id, owner, lend, amount, to_name, description, created_at
					FROM transactions
					WHERE owner = ?
					ORDER BY created_at DESC`
	rows, err := t.db.Query(statement, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var trans model.Transaction
		err := rows.Scan(&trans.ID, &trans.Owner, &trans.Lend, &trans.Amount,
			&trans.To, &trans.Description, &trans.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, trans)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

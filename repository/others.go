package repository

import (
	"database/sql"

	"github.com/hisaab/hisaab-backend/model"
)

type OtherRepoMysql struct {
	db *sql.DB
}

func NewOtherRepoMysql(db *sql.DB) *OtherRepoMysql {
	return &OtherRepoMysql{db: db}
}

// FindOrCreate upserts the (owner, name) row. The UNIQUE key serializes
// concurrent calls with the same key, so at most one row ever exists.
func (o *OtherRepoMysql) FindOrCreate(owner, name string) (*model.Other, error) {
	statement := "INSERT INTO others(owner, name, balance) VALUES(?, ?, 0) ON DUPLICATE KEY UPDATE name = name"
	if _, err := o.db.Exec(statement, owner, name); err != nil {
		return nil, err
	}

	statement = "SELECT id, owner, name, balance FROM others WHERE owner = ? AND name = ?"
	other := &model.Other{}
	err := o.db.QueryRow(statement, owner, name).
		Scan(&other.ID, &other.Owner, &other.Name, &other.Balance)
	if err != nil {
		return nil, err
	}
	return other, nil
}

// AdjustBalance applies delta as a single atomic increment, never a
// read-modify-write in application code.
func (o *OtherRepoMysql) AdjustBalance(owner, name string, delta float64) error {
	statement := "UPDATE others SET balance = balance + ? WHERE owner = ? AND name = ?"
	result, err := o.db.Exec(statement, delta, owner, name)
	if err != nil {
		return err
	}
	return oneRowTouched(result)
}

func (o *OtherRepoMysql) FindByOwner(owner string) ([]model.Other, error) {
	statement := "SELECT id, owner, name, balance FROM others WHERE owner = ? ORDER BY name"
	return o.findMany(statement, owner)
}

// FindNonZero is the settlement view: only counterparties with an open
// balance.
func (o *OtherRepoMysql) FindNonZero(owner string) ([]model.Other, error) {
	statement := "SELECT id, owner, name, balance FROM others WHERE owner = ? AND balance <> 0 ORDER BY name"
	return o.findMany(statement, owner)
}

func (o *OtherRepoMysql) findMany(statement, owner string) ([]model.Other, error) {
	rows, err := o.db.Query(statement, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	others := []model.Other{}
	for rows.Next() {
		var other model.Other
		if err := rows.Scan(&other.ID, &other.Owner, &other.Name, &other.Balance); err != nil {
			return nil, err
		}
		others = append(others, other)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return others, nil
}

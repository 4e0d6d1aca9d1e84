package repository

import (
	"database/sql"

	"github.com/hisaab/hisaab-backend/model"
)

type UserRepoMysql struct {
	db *sql.DB
}

func NewUserRepoMysql(db *sql.DB) *UserRepoMysql {
	return &UserRepoMysql{db: db}
}

func (u *UserRepoMysql) Create(user *model.User) (*model.User, error) {
	statement := "INSERT INTO users(username, email, name, password) VALUES(?, ?, ?, ?)"
	result, err := u.db.Exec(statement, user.Username, user.Email, user.Name, user.Password)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = int(id)
	return user, nil
}

func (u *UserRepoMysql) FindByUsername(username string) (*model.User, error) {
	statement := "SELECT id, username, email, name, password FROM users WHERE username = ?"
	return u.findOne(statement, username)
}

func (u *UserRepoMysql) FindByEmail(email string) (*model.User, error) {
	statement := "SELECT id, username, email, name, password FROM users WHERE email = ?"
	return u.findOne(statement, email)
}

func (u *UserRepoMysql) findOne(statement, arg string) (*model.User, error) {
	user := &model.User{}
	err := u.db.QueryRow(statement, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.Name, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserRepoMysql) UpdatePassword(username, passwordHash string) error {
	statement := "UPDATE users SET password = ? WHERE username = ?"
	result, err := u.db.Exec(statement, passwordHash, username)
	if err != nil {
		return err
	}
	return oneRowTouched(result)
}

func (u *UserRepoMysql) UpdateName(username, name string) (*model.User, error) {
	statement := "UPDATE users SET name = ? WHERE username = ?"
	if _, err := u.db.Exec(statement, name, username); err != nil {
		return nil, err
	}
	return u.FindByUsername(username)
}

func oneRowTouched(result sql.Result) error {
	numRows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if numRows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

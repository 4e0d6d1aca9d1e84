package model

import "github.com/dgrijalva/jwt-go"

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Password string `json:"password,omitempty" validate:"required,min=4"`
}

// UserToken is the JWT claims set issued at login. Only Username is trusted
// downstream; the rest is convenience payload for the client.
type UserToken struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// UserLogin accepts either email or username next to the password.
type UserLogin struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserProfile struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ChangePassword struct {
	OldPass string `json:"oldPass" validate:"required"`
	NewPass string `json:"newPass" validate:"required,min=4"`
}

type ChangeName struct {
	NewName string `json:"newName" validate:"required,min=1,max=64"`
}

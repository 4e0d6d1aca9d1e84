package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/hisaab/hisaab-backend/model"
)

type contextKey string

const userContextKey contextKey = "user"

// JwtVerify guards the authenticated routes. It expects an
// "Authorization: Bearer <token>" header, validates signature and expiry, and
// stores the claims in the request context. The username claim is the
// canonical actor for everything downstream; tokens without it are rejected.
func (a *App) JwtVerify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 {
			token = parts[1]
		}
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims := &model.UserToken{}
		_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.JWTSecret, nil
		})
		if err != nil {
			respondWithError(w, http.StatusForbidden, "Invalid token")
			return
		}
		if claims.Username == "" {
			respondWithError(w, http.StatusForbidden, "Invalid token payload")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFromContext(r *http.Request) *model.UserToken {
	claims, _ := r.Context().Value(userContextKey).(*model.UserToken)
	return claims
}

func (a *App) generateToken(user *model.User) (string, error) {
	claims := &model.UserToken{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(a.TokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.JWTSecret)
}

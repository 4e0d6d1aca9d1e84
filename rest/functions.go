package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hisaab/hisaab-backend/ledger"
	"github.com/hisaab/hisaab-backend/model"
)

const passwordCost = 11

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hisaab API running!"))
}

// Users //

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	creds := &model.UserLogin{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.findAccount(creds.Email, creds.Username)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	// Every validated user owns a "me" counterparty; seed it on login so the
	// ledger can always resolve the sentinel.
	if _, err := a.Others.FindOrCreate(user.Username, ledger.Me); err != nil {
		log.Error().Err(err).Str("user", user.Username).Msg("seeding 'me' counterparty")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	token, err := a.generateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("signing token")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (a *App) findAccount(email, username string) (*model.User, error) {
	if email != "" {
		return a.Users.FindByEmail(email)
	}
	if username != "" {
		return a.Users.FindByUsername(username)
	}
	return nil, sql.ErrNoRows
}

func (a *App) signup(w http.ResponseWriter, r *http.Request) {
	user := &model.User{}
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(user); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	if _, err := a.Users.FindByUsername(user.Username); err == nil {
		respondWithError(w, http.StatusUnauthorized, "Username not available")
		return
	}
	if _, err := a.Users.FindByEmail(user.Email); err == nil {
		respondWithError(w, http.StatusUnauthorized, "Email Id already registered")
		return
	}

	pass, err := bcrypt.GenerateFromPassword([]byte(user.Password), passwordCost)
	if err != nil {
		log.Error().Err(err).Msg("hashing password")
		respondWithError(w, http.StatusInternalServerError, "Password Encryption failed")
		return
	}
	user.Password = string(pass)

	created, err := a.Users.Create(user)
	if err != nil {
		log.Error().Err(err).Str("user", user.Username).Msg("creating user")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	user = created

	if _, err := a.Others.FindOrCreate(user.Username, ledger.Me); err != nil {
		log.Error().Err(err).Str("user", user.Username).Msg("seeding 'me' counterparty")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	token, err := a.generateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("signing token")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

// Tokens are stateless; logout is an acknowledgement for the client.
func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Profile //

func (a *App) profile(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	user, err := a.Users.FindByUsername(actor.Username)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "User not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, model.UserProfile{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (a *App) changePassword(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	payload := &model.ChangePassword{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Both passwords are required")
		return
	}
	if err := a.Validator.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Both passwords are required")
		return
	}

	user, err := a.Users.FindByUsername(actor.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.OldPass)) != nil {
		respondWithError(w, http.StatusForbidden, "Incorrect current password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPass), passwordCost)
	if err != nil {
		log.Error().Err(err).Msg("hashing password")
		respondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if err := a.Users.UpdatePassword(actor.Username, string(hashed)); err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("updating password")
		respondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) changeName(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	payload := &model.ChangeName{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid name")
		return
	}
	if err := a.Validator.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid name")
		return
	}

	user, err := a.Users.UpdateName(actor.Username, payload.NewName)
	if err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("updating name")
		respondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"name":    user.Name,
	})
}

// Ledger //

func (a *App) recordTransaction(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	payload := &model.RecordTransaction{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid parameters")
		return
	}
	if err := a.Validator.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid parameters")
		return
	}

	plan, err := ledger.BuildPlan(actor.Username, payload.From, payload.To,
		payload.Amount, payload.Description, !payload.Trans)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.Ledger.Apply(r.Context(), plan); err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("ledger update failed")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// The cached settlement view is stale after any balance change.
	if len(plan.Deltas) > 0 {
		a.Cache.Invalidate(r.Context(), actor.Username)
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) settlement(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)
	ctx := r.Context()

	if payload, ok := a.Cache.Get(ctx, actor.Username); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	others, err := a.Others.FindNonZero(actor.Username)
	if err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("loading settlement")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	payload, err := json.Marshal(others)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	a.Cache.Set(ctx, actor.Username, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (a *App) getOthers(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	others, err := a.Others.FindByOwner(actor.Username)
	if err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("loading counterparties")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, others)
}

func (a *App) getTransactions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	transactions, err := a.Transactions.FindByOwner(actor.Username)
	if err != nil {
		log.Error().Err(err).Str("user", actor.Username).Msg("loading transactions")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, transactions)
}

// Mail //

func (a *App) sendOTP(w http.ResponseWriter, r *http.Request) {
	payload := &model.OTPRequest{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Missing fields"})
		return
	}
	if err := a.Validator.Struct(payload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Missing fields"})
		return
	}

	if err := a.Mailer.SendOTP(payload.Email, payload.OTP); err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("sending OTP mail")
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "error": "Email send failed"})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

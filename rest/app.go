package rest

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/hisaab/hisaab-backend/cache"
	"github.com/hisaab/hisaab-backend/config"
	"github.com/hisaab/hisaab-backend/contract"
	"github.com/hisaab/hisaab-backend/mail"
	"github.com/hisaab/hisaab-backend/repository"
)

type App struct {
	Router       *mux.Router
	Users        contract.UserRepo
	Others       contract.OtherRepo
	Transactions contract.TransactionRepo
	Ledger       contract.LedgerRepo

	Validator  *validator.Validate
	Translator ut.Translator

	JWTSecret []byte
	TokenTTL  time.Duration
	Mailer    mail.Mailer
	Cache     *cache.SettlementCache
}

func (a *App) Init(db *sql.DB, cfg *config.Config) {
	a.Users = repository.NewUserRepoMysql(db)
	a.Others = repository.NewOtherRepoMysql(db)
	a.Transactions = repository.NewTransactionRepoMysql(db)
	a.Ledger = repository.NewLedgerRepoMysql(db)

	a.JWTSecret = []byte(cfg.JWTSecret)
	a.TokenTTL = cfg.TokenTTL
	a.Mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	a.Cache = cache.New(cfg.RedisAddr)

	a.setupValidation()

	a.Router = mux.NewRouter()
	a.initializeRoutes()
}

func (a *App) setupValidation() {
	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		log.Fatal().Msg("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		log.Fatal().Err(err).Msg("registering validator translations")
	}
}

func (a *App) Run(addr string) {
	log.Info().Str("address", addr).Msg("Hisaab API running")
	log.Fatal().Err(http.ListenAndServe(addr, a.Router)).Msg("server stopped")
}

func (a *App) Close() error {
	return a.Cache.Close()
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/", a.health).Methods(http.MethodGet)
	a.Router.HandleFunc("/login", a.login).Methods(http.MethodPost)
	a.Router.HandleFunc("/signup", a.signup).Methods(http.MethodPost)
	a.Router.HandleFunc("/logout", a.logout).Methods(http.MethodPost)
	a.Router.HandleFunc("/sendotp", a.sendOTP).Methods(http.MethodPost)

	// Auth routes
	s := a.Router.NewRoute().Subrouter()
	s.Use(a.JwtVerify)
	s.HandleFunc("/settlement", a.settlement).Methods(http.MethodGet)
	s.HandleFunc("/users", a.getOthers).Methods(http.MethodGet)
	s.HandleFunc("/transactions", a.getTransactions).Methods(http.MethodGet)
	s.HandleFunc("/trans", a.recordTransaction).Methods(http.MethodPost)
	s.HandleFunc("/profile", a.profile).Methods(http.MethodGet)
	s.HandleFunc("/profile/password", a.changePassword).Methods(http.MethodPatch)
	s.HandleFunc("/profile/name", a.changeName).Methods(http.MethodPatch)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/config"
	domainRepos "github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/blockchain"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/datasources/postgres"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/mailer"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/repositories"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/session"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/handlers"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/middleware"
	"github.com/Exponential-Science/better-auth-hedera/internal/usecases"
	"github.com/Exponential-Science/better-auth-hedera/pkg/jwt"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/Exponential-Science/better-auth-hedera/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	newSessionStore = redis.NewSessionStore
	runServer       = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	walletRepo := repositories.NewWalletAddressRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	var challenges domainRepos.ChallengeStore = repositories.NewRedisChallengeStore()
	if cfg.Siwh.ChallengeStore == config.ChallengeStoreDatabase {
		challenges = repositories.NewSQLChallengeStore(verificationRepo)
	}

	// Sessions
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	jwtService := jwt.NewService(jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessExpiry,
		RefreshTTL: cfg.JWT.RefreshExpiry,
	})
	sessions := session.NewManager(sessionStore, jwtService, cfg.Security.SessionTTL)

	// Signature verification against the Hedera mirror node
	clientFactory := blockchain.NewClientFactory(cfg.Mirror.URLs(), cfg.Mirror.Timeout)
	verifier := blockchain.NewSignatureVerifier(clientFactory)

	var verificationMailer usecases.VerificationMailer
	if cfg.Mail.Enabled() {
		m, err := mailer.NewMailer(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize mailer: %w", err)
		}
		verificationMailer = m
	}

	opts := usecases.SiwhOptions{
		Domain:                cfg.Siwh.Domain,
		BaseURL:               cfg.Siwh.BaseURL,
		EmailDomain:           cfg.Siwh.EmailDomain,
		Anonymous:             cfg.Siwh.Anonymous,
		AutoSignUp:            cfg.Siwh.AutoSignUp,
		AllowUnlinkingAll:     cfg.Siwh.AllowUnlinkingAll,
		SendVerificationEmail: cfg.Siwh.SendVerificationEmail,
		NonceTTL:              cfg.Siwh.NonceTTL,
		AddressForm:           usecases.AddressForm(cfg.Siwh.VerifierAddressForm),
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, verificationRepo, verificationMailer, sessions, cfg.Siwh.BaseURL)
	siwhUsecase := usecases.NewSiwhUsecase(challenges, userRepo, accountRepo, walletRepo, uow, usecases.RandomNonce, verifier, sessions, authUsecase, opts)
	walletLinkUsecase := usecases.NewWalletLinkUsecase(challenges, accountRepo, walletRepo, uow, verifier, opts)

	// Handlers
	handlers.RegisterValidators()
	cookie := handlers.CookieConfig{
		Name:   cfg.Security.CookieName,
		Domain: cfg.Security.CookieDomain,
		Secure: cfg.Security.CookieSecure,
	}

	r := newRouter(routeDeps{
		siwhHandler:    handlers.NewSiwhHandler(siwhUsecase, walletLinkUsecase, cookie),
		authHandler:    handlers.NewAuthHandler(authUsecase, cookie),
		authMiddleware: middleware.AuthMiddleware(sessions, cookie.Name),
		allowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "SIWH service starting",
		zap.String("port", cfg.Server.Port),
		zap.String("challengeStore", cfg.Siwh.ChallengeStore),
	)
	if err := runServer(runCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

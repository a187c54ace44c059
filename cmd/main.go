// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_4_study_cards/internal/config"
	"go_4_study_cards/internal/handlers"
	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/repository"
	"go_4_study_cards/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	// 開発環境では色付きのテキストログ、それ以外はJSONログを使う
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// スキーマをモデルに同期
	if err := db.AutoMigrate(
		&model.User{},
		&model.Card{},
		&model.Tag{},
		&model.UserVerificationToken{},
		&model.PasswordResetToken{},
	); err != nil {
		slog.Error("Error running database migration", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	cardRepo := repository.NewGormCardRepository()
	tagRepo := repository.NewGormTagRepository()
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, tokenRepo, mailer, &config.Cfg)
	cardService := service.NewCardService(db, cardRepo, tagRepo)
	tagService := service.NewTagService(db, tagRepo)
	studyService := service.NewStudyService(db, cardRepo, config.Cfg.App.StudySetLimit)
	generatorService := service.NewGeneratorService(&config.Cfg)

	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService, logger)
	tagHandler := handlers.NewTagHandler(tagService, logger)
	studyHandler := handlers.NewStudyHandler(studyService, logger)
	generateHandler := handlers.NewGenerateHandler(generatorService, logger)

	// 放置された学習セッションの定期掃除
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := studyService.SweepIdleSessions(config.Cfg.App.SessionIdleTTL); n > 0 {
					slog.Info("Swept idle study sessions", slog.Int("count", n))
				}
			}
		}
	}()

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)

	// 認証ミドルウェアは設定で無効化できる (ローカル開発用)
	authMiddleware := middleware.JWTAuthMiddleware(&config.Cfg)
	if !config.Cfg.Auth.Enabled {
		slog.Warn("Authentication is DISABLED. Using X-User-ID header for identification.")
		authMiddleware = middleware.DevUserContextMiddleware
	}

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(60 * time.Second))
			r.Post("/auth/register", authHandler.Register)
			r.Get("/auth/verify", authHandler.VerifyAccount)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/password/forgot", authHandler.RequestPasswordReset)
			r.Post("/auth/password/reset", authHandler.ResetPassword)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(60 * time.Second))
			r.Use(authMiddleware)

			r.Get("/auth/me", authHandler.GetMe)

			// Card routes
			r.Route("/cards", func(r chi.Router) {
				r.Post("/", cardHandler.PostCard)
				r.Get("/", cardHandler.GetCards)
				// /search は / と同じハンドラ。検索条件付きアクセスの明示用
				r.Get("/search", cardHandler.GetCards)
				r.Get("/{card_id}", cardHandler.GetCard)
				r.Put("/{card_id}", cardHandler.PutCard)
				r.Patch("/{card_id}", cardHandler.PatchCard)
				r.Delete("/{card_id}", cardHandler.DeleteCard)
			})

			// Tag routes
			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tagHandler.GetTags)
				r.Post("/", tagHandler.PostTag)
				r.Get("/{tag_id}", tagHandler.GetTag)
				r.Put("/{tag_id}", tagHandler.PutTag)
				r.Delete("/{tag_id}", tagHandler.DeleteTag)
			})

			// Study session routes
			r.Route("/study/sessions", func(r chi.Router) {
				r.Post("/", studyHandler.PostSession)
				r.Get("/{session_id}", studyHandler.GetSession)
				r.Post("/{session_id}/actions", studyHandler.PostAction)
				r.Delete("/{session_id}", studyHandler.DeleteSession)
			})
		})

		// --- Streaming routes (SSEなのでタイムアウトは生成側の設定に任せる) ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/cards/generate", generateHandler.PostGenerate)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:        config.Cfg.Server.Port,
		Handler:     r,
		ReadTimeout: 5 * time.Second,
		// WriteTimeout はSSEストリームを切らないよう生成タイムアウトより長くとる
		WriteTimeout: config.Cfg.Generator.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

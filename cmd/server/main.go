package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"article-server/internal/auth"
	"article-server/internal/config"
	apphttp "article-server/internal/http"
	"article-server/internal/repository"
	"article-server/internal/repository/jsonfile"
	"article-server/internal/repository/sqlite"
	"article-server/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, articleRepo, cleanup, err := buildRepositories(cfg)
	if err != nil {
		logger.Fatalf("setup repositories: %v", err)
	}
	defer cleanup()

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := articleRepo.Init(ctx); err != nil {
		logger.Fatalf("init article repository: %v", err)
	}
	logger.Infof("using %s persistence", cfg.Database.Driver)

	userService := service.NewUserService(userRepo, articleRepo)
	articleService := service.NewArticleService(articleRepo)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, articleService, tokens, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildRepositories(cfg config.Config) (repository.UserRepository, repository.ArticleRepository, func(), error) {
	if cfg.Database.Driver == "jsonfile" {
		users := jsonfile.NewUserRepository(filepath.Join(cfg.Storage.Dir, "users.json"))
		articles := jsonfile.NewArticleRepository(filepath.Join(cfg.Storage.Dir, "articles.json"))
		return users, articles, func() {}, nil
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	users := sqlite.NewUserRepository(db)
	articles := sqlite.NewArticleRepository(db)
	return users, articles, func() { db.Close() }, nil
}

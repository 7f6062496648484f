package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/crucial707/todo-web/internal/config"
	"github.com/crucial707/todo-web/internal/db"
	"github.com/crucial707/todo-web/internal/handlers"
	"github.com/crucial707/todo-web/internal/repo"
	"github.com/crucial707/todo-web/internal/scheduler"
	"github.com/crucial707/todo-web/internal/service"
	"github.com/crucial707/todo-web/internal/session"
)

const redisPingTimeout = 3 * time.Second

// App owns every long-lived resource of the web process.
type App struct {
	Handler  http.Handler
	DB       *sql.DB
	Sessions *session.Manager

	purge *cron.Cron
}

// New opens and migrates the database, picks the session store, starts the
// purge job and builds the router. Any failure here is fatal for startup.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	database, err := db.Open(cfg.DBPath, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, database); err != nil {
		database.Close()
		return nil, err
	}

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, err
	}
	sessions := session.NewManager(store, []byte(cfg.SessionSecret),
		time.Duration(cfg.SessionTTLHours)*time.Hour,
		session.WithSecureCookie(cfg.CookieSecure))

	purge, err := scheduler.Run(cfg.SessionPurgeCron, sessions, log)
	if err != nil {
		sessions.Close()
		database.Close()
		return nil, err
	}

	app := &App{DB: database, Sessions: sessions, purge: purge}

	views, err := handlers.NewRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}

	authSvc, err := service.NewAuthService(repo.NewUserRepo(database), service.NewPasswordHasher(), log)
	if err != nil {
		app.Close()
		return nil, err
	}
	taskSvc := service.NewTaskService(repo.NewTaskRepo(database), log)

	app.Handler = NewRouter(Deps{
		Auth:          &handlers.AuthHandler{Auth: authSvc, Sessions: sessions, Views: views},
		Tasks:         &handlers.TaskHandler{Tasks: taskSvc, Views: views},
		Sessions:      sessions,
		SecureCookies: cfg.CookieSecure,
	})

	return app, nil
}

// Close stops the purge job, then releases the session store and the
// database. Call it only after the HTTP server has stopped accepting requests.
func (a *App) Close() error {
	<-a.purge.Stop().Done()
	return errors.Join(a.Sessions.Close(), a.DB.Close())
}

func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return session.NewMemoryStore(), nil
	}

	store := session.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis session store at %s: %w", cfg.RedisAddr, err)
	}
	return store, nil
}

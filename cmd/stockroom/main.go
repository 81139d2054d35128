package main

import (
	"os"

	"github.com/joho/godotenv"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()
	cfg := config.Load()

	closer, err := applog.Setup(cfg)
	if err != nil {
		applog.Logger().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
	}
	defer closer.Close()
	lg := applog.Logger()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		lg.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	defer db.Close()

	if cfg.SeedDemo {
		if err := repos.SeedDemo(db); err != nil {
			lg.Fatal().Err(err).Msg("seed demo data")
		}
	}

	// Auth wiring
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureUser(cfg.AdminUsername, cfg.AdminPassword, ""); err != nil {
			lg.Fatal().Err(err).Str("username", cfg.AdminUsername).Msg("create initial user")
		}
	}

	deps := handlers.NewDeps(db, cfg, authSvc)
	app := handlers.NewApp(cfg, deps)

	lg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("driver", cfg.DBDriver).Msg("stockroom listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// Package app provides application-level wiring and dependency injection
// for the planning server.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"pinya-planner/internal/config"
	"pinya-planner/internal/db/repository"
	authsvc "pinya-planner/internal/service/auth"
	layoutsvc "pinya-planner/internal/service/layout"
	plannersvc "pinya-planner/internal/service/planner"
	rostersvc "pinya-planner/internal/service/roster"
)

// Deps holds the external dependencies that main() must provide:
// database handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Auth    *authsvc.Service
	Layout  *layoutsvc.Service
	Planner *plannersvc.Service
	Roster  *rostersvc.Service
}

// App holds the fully-wired application.
type App struct {
	Services Services
}

// New wires repositories and services from the provided deps. In
// development mode it also seeds demo data into an empty database.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Write-pool repositories. Reads that tolerate snapshot staleness go
	// through the read pool.
	memberRepo := repository.NewMemberRepo(deps.WriteDB)
	layoutRepo := repository.NewLayoutRepo(deps.WriteDB)
	attendanceRepo := repository.NewAttendanceRepo(deps.WriteDB)
	eventRepo := repository.NewEventRepo(deps.WriteDB)
	voteRepo := repository.NewVoteRepo(deps.ReadDB)

	layoutSvc := layoutsvc.New(layoutRepo)
	plannerSvc := plannersvc.New(memberRepo, attendanceRepo, eventRepo, voteRepo, layoutSvc, deps.Logger)
	plannerSvc.SetSessionTTL(cfg.SessionTTL)
	rosterSvc := rostersvc.New(memberRepo, attendanceRepo, eventRepo)
	authSvc := authsvc.New(memberRepo, []byte(cfg.JWTSecret), cfg.AdminKey)

	if !cfg.IsProduction() {
		if err := seedDemo(ctx, deps.WriteDB, memberRepo, eventRepo); err != nil {
			deps.Logger.Warn("seed demo data failed", "error", err)
		}
	}

	return &App{
		Services: Services{
			Auth:    authSvc,
			Layout:  layoutSvc,
			Planner: plannerSvc,
			Roster:  rosterSvc,
		},
	}, nil
}

package cli

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	internaldb "pinya-planner/internal/db"
	"pinya-planner/internal/db/repository"
	layoutsvc "pinya-planner/internal/service/layout"
	rostersvc "pinya-planner/internal/service/roster"
)

// stores bundles the repositories and services a command needs, plus the
// database handle for cleanup.
type stores struct {
	db      *sql.DB
	layouts *layoutsvc.Service
	roster  *rostersvc.Service
}

// openStores opens the database, runs pending migrations, and wires the
// service layer. Callers must Close.
func openStores(dbPath string) (*stores, error) {
	writeDB, err := internaldb.OpenSQLite(dbPath, "write", 1)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	if err := internaldb.RunMigrations(writeDB); err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &stores{
		db:      writeDB,
		layouts: layoutsvc.New(repository.NewLayoutRepo(writeDB)),
		roster: rostersvc.New(
			repository.NewMemberRepo(writeDB),
			repository.NewAttendanceRepo(writeDB),
			repository.NewEventRepo(writeDB),
		),
	}, nil
}

func (s *stores) Close() {
	_ = s.db.Close()
}

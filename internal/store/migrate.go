package store

import (
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrate(db *sqlx.DB) error {
	goose.SetLogger(&logger{})
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db.DB, "migrations")
}

// logger implements goose.Logger
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Named("migrate").Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Named("migrate").Fatalf(format, v...) }

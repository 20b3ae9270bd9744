// Package mysql is the relational persistence layer. It owns the connection
// pool, schema bootstrap and the per-entity repositories consumed through the
// core ports.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/credentials"
	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/pkg/config"
)

// Connect opens the pooled handle against an already-bootstrapped database.
// Every repository operation draws a connection from this pool for its own
// lifetime; nothing is cached across operations.
func Connect(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg, cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}
	return db, nil
}

// Bootstrap ensures the database and its tables exist, creating them when
// absent, and seeds the admin account only when the database itself did not
// exist before this call. It returns the pooled handle for the schema.
func Bootstrap(ctx context.Context, cfg config.DBConfig, admin config.AdminConfig, log zerolog.Logger) (*sql.DB, error) {
	server, err := sql.Open("mysql", dsn(cfg, ""))
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}
	defer server.Close()

	existed, err := databaseExists(ctx, server, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("mysql probe: %w", err)
	}
	log.Info().Bool("existed", existed).Str("database", cfg.Database).Msg("bootstrapping database")

	// Identifiers cannot be bound as placeholders; the name comes from
	// deployment config, never from a request.
	if _, err := server.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+cfg.Database); err != nil {
		return nil, fmt.Errorf("mysql create database: %w", err)
	}

	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	for _, stmt := range tableCreateStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("mysql create tables: %w", err)
		}
	}

	if !existed {
		if err := seedAdmin(ctx, db, admin, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("mysql seed admin: %w", err)
		}
	}
	return db, nil
}

func databaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var schema string
	err := db.QueryRowContext(ctx,
		`SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?`, name,
	).Scan(&schema)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func seedAdmin(ctx context.Context, db *sql.DB, admin config.AdminConfig, log zerolog.Logger) error {
	hash, err := credentials.NewHasher(credentials.DefaultCost).Hash(admin.Password)
	if err != nil {
		return err
	}
	users := NewUserRepository(db, log)
	_, err = users.Add(ctx, &domain.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		Roles:        []domain.RoleAssignment{domain.AdminRole()},
	})
	if err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("seeded default admin")
	return nil
}

func dsn(cfg config.DBConfig, database string) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Host + ":" + cfg.Port
	mc.DBName = database
	mc.Timeout = cfg.ConnectTimeout
	mc.ParseTime = true
	return mc.FormatDSN()
}

// withTx runs fn inside a transaction, rolling back on any error. Modelled
// after the usual Begin/defer-Rollback/Commit shape so partial writes are
// never observable.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// isDuplicate reports a unique-key violation (MySQL errno 1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

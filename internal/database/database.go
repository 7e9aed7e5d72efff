// Package database owns the gorm connection handle used by the repository
// layer. The handle is created once at startup and released at shutdown.
package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DB struct {
	*gorm.DB
	conn connection
}

type connection struct {
	db  *gorm.DB
	cfg *Config
}

// New connects to the configured database and returns the process-wide
// handle. Connection failures are retried with exponential backoff.
func New(cfg *Config) (*DB, error) {
	config, err := cfg.clone()
	if err != nil {
		return nil, err
	}
	db, err := config.newGormDB()
	if err != nil {
		return nil, err
	}

	return &DB{
		conn: connection{
			db:  db,
			cfg: config,
		},
	}, nil
}

// WithContext binds the handle to a request context so gorm logging and
// cancellation follow the request.
func (d *DB) WithContext(ctx context.Context) *DB {
	if d.DB != nil {
		return d
	}
	return &DB{
		DB:   d.conn.db.WithContext(ctx),
		conn: d.conn,
	}
}

func (d *DB) Begin(ctx context.Context, opts ...*sql.TxOptions) (*DB, error) {
	tx := d.WithContext(ctx).GormDB().Begin(opts...)
	if tx.Error != nil {
		return nil, errors.WithStack(tx.Error)
	}
	return &DB{
		DB:   tx,
		conn: d.conn,
	}, nil
}

func (d *DB) Commit() error {
	return d.GormDB().Commit().Error
}

func (d *DB) Rollback() error {
	return d.GormDB().Rollback().Error
}

func (d *DB) GormDB() *gorm.DB {
	return d.DB
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.conn.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.Close())
}

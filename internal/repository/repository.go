// Package repository implements the user store on top of the database
// handle, translating storage failures into the domain's failure kinds.
package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shoyo10/usersvc/internal/database"
)

type IRepository interface {
	Transaction(ctx context.Context, fc func(txRepo IRepository) error) (err error)
	UserRepo
}

type repo struct {
	db *database.DB
}

func New(db *database.DB) IRepository {
	return &repo{
		db: db,
	}
}

func (r *repo) Transaction(ctx context.Context, fc func(txRepo IRepository) error) (err error) {
	panicked := true
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		// Make sure to rollback when panic, block error or commit error
		if panicked || err != nil {
			if err := tx.Rollback(); err != nil {
				log.Ctx(ctx).Error().Msgf("rollback failed: %+v", err)
			}
		}
	}()

	txRepo := &repo{db: tx}
	err = fc(txRepo)
	if err == nil {
		err = tx.Commit()
	}

	panicked = false
	return
}

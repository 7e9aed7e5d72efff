package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		db, err := New(&Config{
			Driver: Sqlite,
			Master: ConnConfig{DBName: "file:database_test?mode=memory&cache=shared"},
		})
		require.NoError(t, err)
		defer func() {
			_ = db.Close()
		}()

		var one int
		err = db.WithContext(context.Background()).GormDB().Raw("SELECT 1").Scan(&one).Error
		require.NoError(t, err)
		assert.Equal(t, 1, one)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := New(&Config{Driver: "mysql"})
		assert.Error(t, err)
	})
}

func TestPostgresDSN(t *testing.T) {
	cc := ConnConfig{
		Host:     "db.internal",
		Port:     5432,
		Username: "svc",
		Password: "secret",
		DBName:   "usersvc",
	}
	cc.setPostgresDSN()
	assert.Equal(t, "user=svc password=secret host=db.internal port=5432 dbname=usersvc sslmode=disable", cc.dsn)

	cc.SSLEnable = true
	cc.SearchPath = "public"
	cc.setPostgresDSN()
	assert.Equal(t, "user=svc password=secret host=db.internal port=5432 dbname=usersvc sslmode=require search_path=public", cc.dsn)
}

package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shoyo10/usersvc/internal/domain"
	"github.com/shoyo10/usersvc/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo implements repository.IRepository with overridable behavior.
// Transaction runs the block against the mock itself.
type mockRepo struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	getFn    func(ctx context.Context, id int64) (domain.User, error)
	createFn func(ctx context.Context, user *domain.User) error
	updateFn func(ctx context.Context, id int64, columns map[string]interface{}) error
	deleteFn func(ctx context.Context, id int64) error

	createCalls int
	updateCalls int
}

func (m *mockRepo) Transaction(ctx context.Context, fc func(txRepo repository.IRepository) error) error {
	return fc(m)
}

func (m *mockRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	return m.listFn(ctx)
}

func (m *mockRepo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) CreateUser(ctx context.Context, user *domain.User) error {
	m.createCalls++
	return m.createFn(ctx, user)
}

func (m *mockRepo) UpdateUser(ctx context.Context, id int64, columns map[string]interface{}) error {
	m.updateCalls++
	return m.updateFn(ctx, id, columns)
}

func (m *mockRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes before storing", func(t *testing.T) {
		repo := &mockRepo{
			createFn: func(_ context.Context, user *domain.User) error {
				user.ID = 1
				return nil
			},
		}
		svc := New(repo)

		created, err := svc.CreateUser(ctx, domain.UserInput{Name: "  Alice ", Email: " A@B.COM "})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Alice", created.Name)
		assert.Equal(t, "a@b.com", created.Email)
	})

	t.Run("rejects invalid input before storage", func(t *testing.T) {
		repo := &mockRepo{}
		svc := New(repo)

		_, err := svc.CreateUser(ctx, domain.UserInput{Name: "", Email: "a@b.com"})
		assert.True(t, errors.Is(err, domain.ErrInvalidName))

		_, err = svc.CreateUser(ctx, domain.UserInput{Name: "A", Email: "nope"})
		assert.True(t, errors.Is(err, domain.ErrInvalidEmail))

		// an age past the 32-bit column range would wrap in the store
		pastMax := 2147483648
		_, err = svc.CreateUser(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Age: &pastMax})
		assert.True(t, errors.Is(err, domain.ErrInvalidAge))

		assert.Zero(t, repo.createCalls)
	})

	t.Run("propagates email conflict", func(t *testing.T) {
		repo := &mockRepo{
			createFn: func(_ context.Context, _ *domain.User) error {
				return domain.ErrEmailExists
			},
		}
		svc := New(repo)

		_, err := svc.CreateUser(ctx, domain.UserInput{Name: "A", Email: "a@b.com"})
		assert.True(t, errors.Is(err, domain.ErrEmailExists))
	})
}

func TestReplaceUser(t *testing.T) {
	ctx := context.Background()

	t.Run("writes every mutable column", func(t *testing.T) {
		var gotColumns map[string]interface{}
		repo := &mockRepo{
			updateFn: func(_ context.Context, id int64, columns map[string]interface{}) error {
				gotColumns = columns
				return nil
			},
			getFn: func(_ context.Context, id int64) (domain.User, error) {
				return domain.User{ID: id, Name: "Alice", Email: "a@b.com"}, nil
			},
		}
		svc := New(repo)

		updated, err := svc.ReplaceUser(ctx, 1, domain.UserInput{Name: "Alice", Email: " A@B.com "})
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.ID)

		require.Len(t, gotColumns, 3)
		assert.Equal(t, "Alice", gotColumns["name"])
		assert.Equal(t, "a@b.com", gotColumns["email"])
		assert.Nil(t, gotColumns["age"])
	})

	t.Run("missing user", func(t *testing.T) {
		repo := &mockRepo{
			updateFn: func(_ context.Context, _ int64, _ map[string]interface{}) error {
				return domain.ErrUserNotFound
			},
		}
		svc := New(repo)

		_, err := svc.ReplaceUser(ctx, 999999, domain.UserInput{Name: "A", Email: "a@b.com"})
		assert.True(t, errors.Is(err, domain.ErrUserNotFound))
	})
}

func TestPatchUser(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only supplied columns", func(t *testing.T) {
		var gotColumns map[string]interface{}
		repo := &mockRepo{
			updateFn: func(_ context.Context, _ int64, columns map[string]interface{}) error {
				gotColumns = columns
				return nil
			},
			getFn: func(_ context.Context, id int64) (domain.User, error) {
				return domain.User{ID: id}, nil
			},
		}
		svc := New(repo)

		age := 7
		_, err := svc.PatchUser(ctx, 1, domain.UserPatch{Age: &age})
		require.NoError(t, err)
		require.Len(t, gotColumns, 1)
		assert.Equal(t, 7, gotColumns["age"])
	})

	t.Run("empty patch never reaches storage", func(t *testing.T) {
		repo := &mockRepo{}
		svc := New(repo)

		_, err := svc.PatchUser(ctx, 1, domain.UserPatch{})
		assert.True(t, errors.Is(err, domain.ErrEmptyUpdate))
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("out-of-range age never reaches storage", func(t *testing.T) {
		repo := &mockRepo{}
		svc := New(repo)

		pastMax := 2147483648
		_, err := svc.PatchUser(ctx, 1, domain.UserPatch{Age: &pastMax})
		assert.True(t, errors.Is(err, domain.ErrInvalidAge))
		assert.Zero(t, repo.updateCalls)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the deleted record", func(t *testing.T) {
		repo := &mockRepo{
			getFn: func(_ context.Context, id int64) (domain.User, error) {
				return domain.User{ID: id, Name: "Alice", Email: "a@b.com"}, nil
			},
			deleteFn: func(_ context.Context, _ int64) error {
				return nil
			},
		}
		svc := New(repo)

		deleted, err := svc.DeleteUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", deleted.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := &mockRepo{
			getFn: func(_ context.Context, _ int64) (domain.User, error) {
				return domain.User{}, domain.ErrUserNotFound
			},
		}
		svc := New(repo)

		_, err := svc.DeleteUser(ctx, 999999)
		assert.True(t, errors.Is(err, domain.ErrUserNotFound))
	})
}

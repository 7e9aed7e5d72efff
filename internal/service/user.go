// Package service orchestrates validation and the user store. All input
// checks happen here, before any storage round-trip.
package service

import (
	"context"

	"github.com/shoyo10/usersvc/internal/domain"
	"github.com/shoyo10/usersvc/internal/repository"
	"github.com/shoyo10/usersvc/internal/validation"
)

type IUserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	CreateUser(ctx context.Context, in domain.UserInput) (domain.User, error)
	ReplaceUser(ctx context.Context, id int64, in domain.UserInput) (domain.User, error)
	PatchUser(ctx context.Context, id int64, in domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) (domain.User, error)
}

type userService struct {
	repo repository.IRepository
}

func New(repo repository.IRepository) IUserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, in domain.UserInput) (domain.User, error) {
	if err := validation.UserInput(&in); err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *userService) ReplaceUser(ctx context.Context, id int64, in domain.UserInput) (domain.User, error) {
	if err := validation.UserInput(&in); err != nil {
		return domain.User{}, err
	}

	columns := map[string]interface{}{
		"name":  in.Name,
		"email": in.Email,
		"age":   nil,
	}
	if in.Age != nil {
		columns["age"] = *in.Age
	}
	return s.updateUser(ctx, id, columns)
}

func (s *userService) PatchUser(ctx context.Context, id int64, in domain.UserPatch) (domain.User, error) {
	if err := validation.UserPatch(&in); err != nil {
		return domain.User{}, err
	}

	columns := map[string]interface{}{}
	if in.Name != nil {
		columns["name"] = *in.Name
	}
	if in.Email != nil {
		columns["email"] = *in.Email
	}
	if in.Age != nil {
		columns["age"] = *in.Age
	}
	return s.updateUser(ctx, id, columns)
}

// updateUser applies the column writes and re-reads the record in one
// transaction so the returned state is the one the write produced.
func (s *userService) updateUser(ctx context.Context, id int64, columns map[string]interface{}) (domain.User, error) {
	var updated domain.User
	err := s.repo.Transaction(ctx, func(txRepo repository.IRepository) error {
		if err := txRepo.UpdateUser(ctx, id, columns); err != nil {
			return err
		}
		var err error
		updated, err = txRepo.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) (domain.User, error) {
	var deleted domain.User
	err := s.repo.Transaction(ctx, func(txRepo repository.IRepository) error {
		var err error
		deleted, err = txRepo.GetUser(ctx, id)
		if err != nil {
			return err
		}
		return txRepo.DeleteUser(ctx, id)
	})
	if err != nil {
		return domain.User{}, err
	}
	return deleted, nil
}

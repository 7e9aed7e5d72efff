package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shoyo10/usersvc/internal/domain"
	"gorm.io/gorm"
)

type UserRepo interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, id int64, columns map[string]interface{}) error
	DeleteUser(ctx context.Context, id int64) error
}

// User is the persistence shape of domain.User.
type User struct {
	ID        int64         `gorm:"column:id;primaryKey"`
	Name      string        `gorm:"column:name;not null"`
	Email     string        `gorm:"column:email;not null;uniqueIndex"`
	Age       sql.NullInt32 `gorm:"column:age"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) fromDomain(user domain.User) {
	u.ID = user.ID
	u.Name = user.Name
	u.Email = user.Email
	if user.Age != nil {
		u.Age = sql.NullInt32{
			Int32: int32(*user.Age),
			Valid: true,
		}
	}
}

func (u User) toDomain() domain.User {
	user := domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Age.Valid {
		age := int(u.Age.Int32)
		user.Age = &age
	}
	return user
}

func (r *repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []User
	err := r.db.WithContext(ctx).GormDB().Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (r *repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var row User
	err := r.db.WithContext(ctx).GormDB().Where("id = ?", id).First(&row).Error
	if err != nil {
		return domain.User{}, wrapStoreError(err)
	}
	return row.toDomain(), nil
}

func (r *repo) CreateUser(ctx context.Context, user *domain.User) error {
	var row User
	row.fromDomain(*user)
	err := r.db.WithContext(ctx).GormDB().Create(&row).Error
	if err != nil {
		return wrapStoreError(err)
	}
	*user = row.toDomain()
	return nil
}

// UpdateUser overwrites the given columns of one user. It serves both the
// full replace (all mutable columns, age possibly nil) and the partial
// patch (only the supplied columns).
func (r *repo) UpdateUser(ctx context.Context, id int64, columns map[string]interface{}) error {
	tx := r.db.WithContext(ctx).GormDB().Model(&User{}).Where("id = ?", id).Updates(columns)
	if tx.Error != nil {
		return wrapStoreError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errors.WithStack(domain.ErrUserNotFound)
	}
	return nil
}

func (r *repo) DeleteUser(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).GormDB().Where("id = ?", id).Delete(&User{})
	if tx.Error != nil {
		return wrapStoreError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errors.WithStack(domain.ErrUserNotFound)
	}
	return nil
}

// wrapStoreError maps gorm sentinels onto the domain's closed failure set.
// The users table has a single uniqueness constraint, on email.
func wrapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.WithStack(domain.ErrUserNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.WithStack(domain.ErrEmailExists)
	default:
		return errors.WithStack(err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
)

// UserUpdate carries the mutable user fields; nil pointers leave the stored
// value untouched (shallow merge).
type UserUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Role        *string `json:"role,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	NIT         *string `json:"nit,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
	Career      *string `json:"career,omitempty"`
	Department  *string `json:"department,omitempty"`
}

// UserService exposes the admin user-management operations.
type UserService interface {
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	return s.repo.List(ctx, filter)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.CompanyName != nil {
		user.CompanyName = *update.CompanyName
	}
	if update.NIT != nil {
		user.NIT = *update.NIT
	}
	if update.StudentID != nil {
		user.StudentID = *update.StudentID
	}
	if update.Career != nil {
		user.Career = *update.Career
	}
	if update.Department != nil {
		user.Department = *update.Department
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the account. No cascading cleanup: offers and
// applications keep their denormalized names and ids.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

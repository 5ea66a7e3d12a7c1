package service

import (
	"errors"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"
	"vyaparpro-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers admin-only user administration. Own-profile operations
// live in AuthService.
type UserService interface {
	GetAllUsers(actor *model.User) ([]model.UserResponse, error)
	DeleteUser(targetID uuid.UUID, actor *model.User) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(actor *model.User) ([]model.UserResponse, error) {
	if !policy.Allows(actor.Role, policy.ResourceUser, policy.ActionRead) {
		return nil, apperr.Forbidden("not allowed to list users")
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// DeleteUser removes another user's account. Self-deletion is rejected even
// for admins.
func (s *userService) DeleteUser(targetID uuid.UUID, actor *model.User) error {
	if !policy.Allows(actor.Role, policy.ResourceUser, policy.ActionDelete) {
		return apperr.Forbidden("not allowed to delete users")
	}
	if targetID == actor.ID {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	return s.userRepo.Delete(targetID)
}

package service

import (
	"errors"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/pkg/config"
	"vyaparpro-api/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role"` // optional, defaults to viewer
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
	GetProfile(userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwtCfg: jwtCfg}
}

func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !role.Valid() {
		return nil, apperr.Validation("Invalid role '%s'", role)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.Conflict("Email already registered")
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.respondWithToken(user)
}

func (s *authService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return s.respondWithToken(user)
}

func (s *authService) GetProfile(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// UpdateProfile lets a user change their own name, email and password.
// Role changes are out of scope here.
func (s *authService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	if req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, apperr.Conflict("Email already registered")
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) respondWithToken(user *model.User) (*AuthResponse, error) {
	token, err := jwt.Generate(
		s.jwtCfg.Secret,
		user.ID, user.Email, user.Name, string(user.Role),
		s.jwtCfg.Issuer, s.jwtCfg.ExpirationHours,
	)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}

package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"go-admin-portal/internal/config"
	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/pkg/validator"
)

var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrNoRoleAssigned = errors.New("no role assigned")
)

type UserService interface {
	GetUser(id uint) (*model.UserProfile, error)
	GetUsers(limit, offset int) (*UserList, error)
	CreateUser(req *CreateUserRequest) (*model.User, error)
	UpdateUser(id uint, req *UpdateUserRequest) (*model.User, error)
	DeleteUser(id uint) error
	AssignRole(userID, roleID uint) error
	GetMyRole(email string) (*model.Role, error)
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UserList struct {
	Total int64               `json:"total"`
	Items []model.UserProfile `json:"items"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		cfg:      cfg,
	}
}

func (s *userService) GetUser(id uint) (*model.UserProfile, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	profile := user.ToProfile()
	return &profile, nil
}

func (s *userService) GetUsers(limit, offset int) (*UserList, error) {
	users, total, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]model.UserProfile, len(users))
	for i := range users {
		items[i] = users[i].ToProfile()
	}
	return &UserList{Total: total, Items: items}, nil
}

// CreateUser provisions a user with its default role: admin, or superAdmin
// when the email is on the allow-list.
func (s *userService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	roleName := model.RoleAdmin
	if s.cfg.IsSuperAdmin(req.Email) {
		roleName = model.RoleSuperAdmin
	}

	role, err := s.roleRepo.FindByName(roleName)
	if err != nil {
		log.Printf("Role '%s' not found, was the database seeded?", roleName)
		return nil, ErrRoleNotFound
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
		RoleID:   &role.ID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id uint, req *UpdateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != user.Email {
		existing, _ := s.userRepo.FindByEmail(req.Email)
		if existing != nil {
			return nil, ErrEmailExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

// AssignRole enforces the one-role-per-user contract: the role_id column
// simply points at the new role.
func (s *userService) AssignRole(userID, roleID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	if _, err := s.roleRepo.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	return s.userRepo.AssignRole(userID, roleID)
}

func (s *userService) GetMyRole(email string) (*model.Role, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role == nil {
		return nil, ErrNoRoleAssigned
	}
	return user.Role, nil
}

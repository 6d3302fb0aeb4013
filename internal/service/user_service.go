package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
	pkgerrors "github.com/leonardodellacroce/TeatriApuani-sub001/pkg/errors"
)

// 用户模块错误
var (
	ErrEmailTaken         = errors.New("邮箱已被占用")
	ErrUserCompanyMissing = errors.New("所属公司不存在")
)

// UserService 用户管理（仅 admin 可写）
type UserService interface {
	Create(ctx context.Context, operatorID string, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, page, pageSize int) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, operatorID, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, operatorID, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建用户服务实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, operatorID string, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, err
	}
	if req.CompanyID != "" {
		if _, err := s.repo.Company.GetByID(ctx, req.CompanyID); err != nil {
			if isNotFound(err) {
				return nil, ErrUserCompanyMissing
			}
			return nil, err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if req.CompanyID != "" {
		user.CompanyID = &req.CompanyID
	}
	user.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info("创建用户", zap.String("user_id", user.UserID), zap.String("operator", operatorID))
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, total, nil
}

func (s *userService) Update(ctx context.Context, operatorID, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !isNotFound(err) {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.CompanyID != "" {
		if _, err := s.repo.Company.GetByID(ctx, req.CompanyID); err != nil {
			if isNotFound(err) {
				return nil, ErrUserCompanyMissing
			}
			return nil, err
		}
		user.CompanyID = &req.CompanyID
	}
	user.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id, operatorID)
}

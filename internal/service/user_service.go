package service

import (
	"context"
	"time"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/redis"
	"yatube/internal/pkg/security"
	"yatube/internal/pkg/util"
	"yatube/internal/repository"

	"github.com/jinzhu/copier"
)

const (
	msgUsernameTaken    = "A user with that username already exists."
	msgInvalidLogin     = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgOldPasswordWrong = "Your old password was entered incorrectly. Please enter it again."
)

type UserService interface {
	Register(ctx context.Context, form *dto.SignupForm) (*model.User, error)
	Login(ctx context.Context, form *dto.LoginForm) (string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uint64, form *dto.PasswordChangeForm) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Register(ctx context.Context, form *dto.SignupForm) (*model.User, error) {
	errs := util.ValidateForm(form)
	if errs == nil {
		errs = dto.FormErrors{}
	}

	if !errs.Has("username") {
		findUser, err := s.userRepo.GetUserByUsername(ctx, form.Username)
		if err != nil {
			return nil, err
		}
		if findUser != nil {
			errs.Add("username", msgUsernameTaken)
		}
	}
	if err := newFormError(errs); err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := copier.Copy(user, form); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(form.Password1)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 成功返回签发的 token，凭证错误统一返回 non-field 错误
func (s *UserServiceImpl) Login(ctx context.Context, form *dto.LoginForm) (string, error) {
	if err := newFormError(util.ValidateForm(form)); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, form.Username)
	if err != nil {
		return "", err
	}
	if user == nil || security.CheckPasswordHash(form.Password, user.Password) != nil {
		return "", &FormError{Errors: dto.FormErrors{dto.NonFieldErrors: {msgInvalidLogin}}}
	}

	version, err := redis.SessionVersion(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return issueToken(user, version)
}

func issueToken(user *model.User, sessionVersion int64) (string, error) {
	var roles []string
	if user.IsStaff {
		roles = append(roles, security.RoleAdmin)
	}
	return security.GenerateSessionToken(user.ID, user.Username, roles, sessionVersion)
}

// Logout 将 token 签名加入黑名单直到其过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		// 已失效的 token 无需拉黑
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, 1, ttl)
}

// ChangePassword 修改成功后其它会话全部失效，返回当前会话的新 token
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uint64, form *dto.PasswordChangeForm) (string, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	errs := util.ValidateForm(form)
	if errs == nil {
		errs = dto.FormErrors{}
	}
	if !errs.Has("old_password") && security.CheckPasswordHash(form.OldPassword, user.Password) != nil {
		errs.Add("old_password", msgOldPasswordWrong)
	}
	if err = newFormError(errs); err != nil {
		return "", err
	}

	passwordHash, err := security.HashPassword(form.NewPassword1)
	if err != nil {
		return "", err
	}
	if err = s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return "", err
	}

	version, err := redis.BumpSessionVersion(ctx, user.ID, 0)
	if err != nil {
		return "", err
	}
	return issueToken(user, version)
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser 管理员删除用户并吊销其会话，帖子、评论与关注关系级联删除
func (s *UserServiceImpl) DeleteUser(ctx context.Context, username string) error {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	// 先吊销会话，避免已删除用户带着旧 token 写入；不再签发新 token，版本随 token 一起过期
	if _, err = redis.BumpSessionVersion(ctx, user.ID, security.TokenTTL()); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, user.ID)
}

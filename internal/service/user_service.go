package service

import (
	"errors"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists    = errors.New("username or email already taken")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrUserBanned    = errors.New("account banned")
)

type UserService struct {
	repo      *mysql.UserRepository
	tokenRepo redis.UserRepository
	email     *EmailService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:  &mysql.UserRepository{DB: db},
		email: NewEmailService(),
	}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
}

// Register 邮箱验证码 + 唯一性检查，密码bcrypt入库
func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	if err := s.email.VerifyCode(ScopeRegister, in.Email, in.Code); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(in.Username); err == nil {
		return nil, ErrUserExists
	}
	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:      in.Username,
		Password:      string(hash),
		Email:         in.Email,
		EmailVerified: true,
		Name:          in.Username,
	}
	if err = s.repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 单点登录：新登录会覆盖redis里旧会话的token
func (s *UserService) Login(username, password string) (*model.User, *pkg.Pair, error) {
	u, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, nil, ErrWrongPassword
	}
	if u.Banned {
		return nil, nil, ErrUserBanned
	}
	pair, err := pkg.GeneratePair(u.ID, u.Role)
	if err != nil {
		return nil, nil, err
	}
	if err = s.tokenRepo.AddUserToken(u.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.tokenRepo.DeleteUserToken(userID)
}

// Refresh 换发新token对并顶掉redis中的旧会话
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.tokenRepo.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResetPassword 忘记密码走邮箱验证码，重置后旧会话作废
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	if err := s.email.VerifyCode(ScopeReset, email, code); err != nil {
		return err
	}
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(u, string(hash)); err != nil {
		return err
	}
	return s.tokenRepo.DeleteUserToken(u.ID)
}

// ChangePassword 登录态下改密码，需校验旧密码
func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(u, string(hash)); err != nil {
		return err
	}
	return s.tokenRepo.DeleteUserToken(userID)
}

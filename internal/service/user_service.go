package service

import (
	"errors"

	"Aura_Community/internal/model"
	"Aura_Community/internal/pkg"
	"Aura_Community/internal/repository/mysql"
	"Aura_Community/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists      = errors.New("username or email already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	if username == "" || password == "" || email == "" {
		return ErrValidation
	}
	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}
	// 签发后把access token写入redis，实现单点登录
	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

func (s *UserService) Profile(usrID uint64) (*model.User, error) {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ResetPassword 凭邮箱验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// ChangePassword 登录态修改密码，修改成功后强制下线
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

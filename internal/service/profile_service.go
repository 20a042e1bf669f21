package service

import (
	"errors"
	"strings"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

type ProfileService struct {
	repo *mysql.UserRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{repo: &mysql.UserRepository{DB: db}}
}

// ProfileView 对外资料视图，不暴露密码和计费ID
type ProfileView struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	EmailVerified  bool      `json:"email_verified"`
	Name           string    `json:"name"`
	Image          string    `json:"image"`
	FavoriteNumber int       `json:"favorite_number"`
	Role           int       `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func toProfileView(u *model.User) *ProfileView {
	return &ProfileView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		EmailVerified:  u.EmailVerified,
		Name:           u.Name,
		Image:          u.Image,
		FavoriteNumber: u.FavoriteNumber,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

func (s *ProfileService) Get(userID uint64) (*ProfileView, error) {
	u, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toProfileView(u), nil
}

type ProfileInput struct {
	Name           *string `json:"name"`
	Image          *string `json:"image"`
	FavoriteNumber *int    `json:"favorite_number"`
}

// Update 局部更新，只动请求里带的字段
func (s *ProfileService) Update(userID uint64, in ProfileInput) (*ProfileView, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Image != nil {
		fields["image"] = strings.TrimSpace(*in.Image)
	}
	if in.FavoriteNumber != nil {
		fields["favorite_number"] = *in.FavoriteNumber
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateProfile(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(userID)
}

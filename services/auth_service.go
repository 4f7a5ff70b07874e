package services

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type AuthService struct {
	Repo      *repository.UserRepository
	JWTSecret string
	JWTTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Repo: repo, JWTSecret: secret, JWTTTL: ttl}
}

type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (s *AuthService) Register(req *RegisterReq) (*entity.User, string, error) {
	taken, err := s.Repo.EmailTaken(req.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", apperr.Validationf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "hash password")
	}

	u := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Phone:    req.Phone,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(u.ID, s.JWTSecret, s.JWTTTL)
	return u, token, err
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Login(req *LoginReq) (*entity.User, string, error) {
	u, err := s.Repo.ByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Validationf("invalid credentials")
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, "", apperr.Validationf("invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, s.JWTSecret, s.JWTTTL)
	return u, token, err
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	u, err := s.Repo.ByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d", userID)
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileReq) (*entity.User, error) {
	u, err := s.Me(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	return u, s.Repo.Save(u)
}

type UpdatePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (s *AuthService) UpdatePassword(userID uint, req *UpdatePasswordReq) error {
	u, err := s.Me(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)) != nil {
		return apperr.Validationf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	u.Password = string(hash)
	return s.Repo.Save(u)
}

// ---- address book ----

type AddressReq struct {
	Label     string `json:"label"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	Landmark  string `json:"landmark"`
	IsDefault bool   `json:"isDefault"`
}

func (s *AuthService) Addresses(userID uint) ([]entity.Address, error) {
	return s.Repo.Addresses(userID)
}

func (s *AuthService) AddAddress(userID uint, req *AddressReq) (*entity.Address, error) {
	if req.IsDefault {
		if err := s.Repo.ClearDefaultAddress(userID); err != nil {
			return nil, err
		}
	}
	a := &entity.Address{
		UserID:    userID,
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Landmark:  req.Landmark,
		IsDefault: req.IsDefault,
	}
	return a, s.Repo.CreateAddress(a)
}

func (s *AuthService) UpdateAddress(userID, addressID uint, req *AddressReq) (*entity.Address, error) {
	a, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault && !a.IsDefault {
		if err := s.Repo.ClearDefaultAddress(userID); err != nil {
			return nil, err
		}
	}

	a.Label = req.Label
	a.Street = req.Street
	a.City = req.City
	a.State = req.State
	a.Pincode = req.Pincode
	a.Landmark = req.Landmark
	a.IsDefault = req.IsDefault
	return a, s.Repo.SaveAddress(a)
}

func (s *AuthService) DeleteAddress(userID, addressID uint) error {
	a, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteAddress(a)
}

func (s *AuthService) ownedAddress(userID, addressID uint) (*entity.Address, error) {
	a, err := s.Repo.AddressByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("address %d", addressID)
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, apperr.Forbiddenf("address %d", addressID)
	}
	return a, nil
}

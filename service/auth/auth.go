// Package auth implementa o registo e a autenticação de perfis da
// plataforma com hash bcrypt da palavra-passe.
package auth

import (
	"errors"
	"fmt"

	"makini-agent-backend/dao"
	"makini-agent-backend/model"
	"makini-agent-backend/request"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func UserRegister(req request.UserRegisterRequest) (*model.Profile, error) {
	existing, err := dao.GetProfileByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %v", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	profile := &model.Profile{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Nome:         req.Nome,
		NIF:          req.NIF,
		Telefone:     req.Telefone,
	}
	if err := dao.CreateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %v", err)
	}

	return profile, nil
}

func UserLogin(req request.UserLoginRequest) (*model.Profile, error) {
	profile, err := dao.GetProfileByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %v", err)
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return profile, nil
}

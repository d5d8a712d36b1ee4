package services

import (
	stderrors "errors"
	"fmt"

	"playroom/auth"
	"playroom/domain"
	"playroom/errors"
	"playroom/repositories"
)

type IAccountService interface {
	Register(email, password, displayName string) (Token, error)
	Login(email, password string) (Token, error)
}

type Token string

// AccountService is the in-house side of the identity provider: it manages
// credentials and issues the JWTs that the Authenticator later verifies.
type AccountService struct {
	users    repositories.IUserRepository
	profiles repositories.IProfileRepository
	tokens   *auth.JWTProvider
}

func NewAccountService(users repositories.IUserRepository,
	profiles repositories.IProfileRepository,
	tokens *auth.JWTProvider) IAccountService {
	return &AccountService{users: users, profiles: profiles, tokens: tokens}
}

func (s *AccountService) Register(email, password, displayName string) (Token, error) {
	req := auth.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}

	if err := auth.ValidateRegister(req); err != nil {
		if stderrors.Is(err, errors.ErrInvalidPassword) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidRegistration, err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.users.CreateUser(email, displayName, hashedPassword)
	if err != nil {
		return "", err // propagates ErrUserAlreadyExists when the email is taken
	}

	// The public profile is created alongside the account so the friend
	// request flow can resolve display names right away.
	if _, err := s.profiles.Upsert(domain.UserProfile{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
	}); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(userID, email, []string{"user"})
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

func (s *AccountService) Login(email, password string) (Token, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration.
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Roles)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

package services

import (
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Users *repos.UserRepo
	Cost  int // bcrypt cost; 0 means bcrypt.DefaultCost
}

func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates an account and signs it in on sid. An existing username
// (exact match) yields domain.ErrUsernameTaken and leaves the session alone.
func (s *AuthService) Register(sid, username, password, email string) (*domain.User, error) {
	u, err := s.create(username, password, email)
	if err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureUser creates the account when no user by that name exists yet.
func (s *AuthService) EnsureUser(username, password, email string) error {
	_, err := s.create(username, password, email)
	if errors.Is(err, domain.ErrUsernameTaken) {
		return nil
	}
	return err
}

func (s *AuthService) create(username, password, email string) (*domain.User, error) {
	if _, err := s.Users.ByUsername(username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.Users.Create(username, email, string(hash))
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Package credentials creates accounts and checks passwords against the
// usuario collection.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"examen-portal/internal/models"
	"examen-portal/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUser      = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid registration data")
)

// bcrypt only hashes the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

// NewUser is the registration payload. Password is plaintext until Create hashes it.
type NewUser struct {
	Nombre   string `validate:"required,max=100"`
	Apellido string `validate:"required,max=100"`
	Celular  string `validate:"required,max=30"`
	Email    string `validate:"required,email,max=255"`
	Usuario  string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
}

type Service struct {
	store    storage.UserStore
	cost     int
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds the credential store. A zero cost selects bcrypt.DefaultCost.
func NewService(store storage.UserStore, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		store:    store,
		cost:     cost,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create registers a user and returns its storage identifier. Duplicate
// usernames or emails return ErrDuplicateUser and an empty identifier.
func (s *Service) Create(ctx context.Context, in NewUser) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(in.Password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password exceeds %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	if taken, err := s.exists(ctx, s.store.FindUserByUsername, in.Usuario); err != nil {
		return "", err
	} else if taken {
		log.Warn().Str("usuario", in.Usuario).Msg("registration rejected: username already exists")
		return "", ErrDuplicateUser
	}
	if taken, err := s.exists(ctx, s.store.FindUserByEmail, in.Email); err != nil {
		return "", err
	} else if taken {
		log.Warn().Str("email", in.Email).Msg("registration rejected: email already exists")
		return "", ErrDuplicateUser
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	id, err := s.store.InsertUser(ctx, models.Usuario{
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Celular:   in.Celular,
		Email:     in.Email,
		Usuario:   in.Usuario,
		Password:  hash,
		CreatedAt: s.now(),
	})
	if err != nil {
		// a concurrent registration can slip past the lookups; the unique index catches it
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Warn().Str("usuario", in.Usuario).Msg("registration rejected by unique index")
			return "", ErrDuplicateUser
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	log.Info().Str("usuario", in.Usuario).Str("id", id).Msg("user registered")
	return id, nil
}

func (s *Service) exists(ctx context.Context, find func(context.Context, string) (models.Usuario, error), key string) (bool, error) {
	_, err := find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup user: %w", err)
	}
}

// FindByUsername does an exact, case-sensitive lookup. A missing user
// returns an error wrapping storage.ErrNotFound.
func (s *Service) FindByUsername(ctx context.Context, username string) (models.Usuario, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return models.Usuario{}, fmt.Errorf("find user %q: %w", username, err)
	}
	return user, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches the stored bcrypt hash.
func (s *Service) VerifyPassword(storedHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// Authenticate returns the user for a valid username/password pair. Unknown
// users and wrong passwords both produce ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.Usuario, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info().Str("usuario", username).Msg("login failed: unknown user")
			return models.Usuario{}, ErrInvalidCredentials
		}
		return models.Usuario{}, err
	}
	if !s.VerifyPassword(user.Password, password) {
		log.Info().Str("usuario", username).Msg("login failed: wrong password")
		return models.Usuario{}, ErrInvalidCredentials
	}
	return user, nil
}

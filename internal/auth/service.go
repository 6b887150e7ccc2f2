package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/auth/jwt"
	"github.com/escaperoom/escaperoom-backend/internal/db/repository"
	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
)

var (
	// ErrUserExists means the username or the email is already registered.
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles registration and login.
type Service struct {
	userRepo   *repository.UserRepository
	tokenMgr   *jwt.Manager
	bcryptCost int
	dummyHash  string
	logger     zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
	BcryptCost  int
}

// NewService creates an authentication service.
func NewService(userRepo *repository.UserRepository, opts ServiceOptions, logger zerolog.Logger) (*Service, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	// Compared against when the email is unknown so both login failures cost the same.
	dummy, err := hashPasswordWithCost("escaperoom-dummy-password", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Service{
		userRepo:   userRepo,
		tokenMgr:   jwt.NewManager(opts.TokenConfig),
		bcryptCost: cost,
		dummyHash:  dummy,
		logger:     logger.With().Str("component", "auth").Logger(),
	}, nil
}

// Register creates a new account. Username and email must both be unused.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	exists, err := s.userRepo.Exists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := hashPasswordWithCost(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dbUser, err := s.userRepo.Create(ctx, sqlcgen.CreateUserParams{
		Username: req.Username,
		Password: passwordHash,
		Email:    req.Email,
	})
	if err != nil {
		// A concurrent registration won the race past the existence check.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Int64("user_id", dbUser.ID).Str("username", dbUser.Username).Msg("user registered")

	return toUser(dbUser), nil
}

// Login authenticates a user with email/password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	dbUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ComparePassword(req.Password, s.dummyHash)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	if !ComparePassword(req.Password, dbUser.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	if isLegacyDigest(dbUser.Password) {
		s.logger.Warn().Int64("user_id", dbUser.ID).Msg("user authenticated with legacy unsalted hash")
	}

	user := toUser(dbUser)
	tokens, err := s.generateTokens(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return user, tokens, nil
}

// ValidateToken validates an access token and returns user claims.
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(tokenString)
}

func (s *Service) generateTokens(user User) (*TokenPair, error) {
	accessToken, err := s.tokenMgr.GenerateAccessToken(jwt.User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}

func toUser(u sqlcgen.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/server/auth"
	"github.com/dmitrijs2005/recetario/internal/server/config"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenType is the token_type returned with every access token.
const TokenType = "bearer"

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func (s *UserService) Register(ctx context.Context, in models.UserCreate) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	switch {
	case username == "":
		return nil, invalidField("username")
	case email == "" || !strings.Contains(email, "@"):
		return nil, invalidField("email")
	case in.Password == "":
		return nil, invalidField("password")
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, invalidField("password")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, HashedPassword: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// the username was free a moment ago, so the email collided
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks the password and issues an access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &models.Token{AccessToken: token, TokenType: TokenType}, nil
}

// UserFromToken resolves the owner of an access token. Invalid or expired
// tokens and deleted users all yield ErrInvalidCredentials.
func (s *UserService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

// Profile loads the user's recipes and cookbooks, the latter with their
// recipes.
func (s *UserService) Profile(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile := user.Profile()

	recipes, err := s.repomanager.Recipes(s.db).ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	profile.Recipes = recipes

	cookbooks, err := s.repomanager.Cookbooks(s.db).ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list cookbooks: %w", err)
	}
	if err := fillRecipes(ctx, s.repomanager.Recipes(s.db), cookbooks); err != nil {
		return nil, err
	}
	profile.Cookbooks = cookbooks

	return profile, nil
}

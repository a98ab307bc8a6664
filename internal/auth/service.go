package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const tokenLifetime = 24 * time.Hour

type UserService struct {
	repo   *UserRepository
	logger *zap.Logger
}

func NewUserService(repo *UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) error {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("user already exists")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User registered", zap.String("email", user.Email), zap.String("role", user.Role))
	return nil
}

// LoginResult is what a successful authentication returns to the client.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *UserService) AuthenticateUser(ctx context.Context, cred Credential) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, cred.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return nil, errors.New("invalid credentials")
	}

	token, err := GenerateJWT(user.Name, user.Email, user.Role, tokenLifetime)
	if err != nil {
		return nil, errors.New("token not generated")
	}
	return &LoginResult{
		Token: token,
		Role:  user.Role,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

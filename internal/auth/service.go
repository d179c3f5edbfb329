package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/config"
	"voyago/internal/users"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error)
}

type service struct {
	repo Repository
	cfg  *config.JWTConfig
}

func NewService(repo Repository, cfg *config.JWTConfig) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Storage("check email", err)
	}
	if exists {
		return nil, apperrors.Conflict("email already registered", map[string]any{"email": req.Email})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage("hash password", err)
	}

	user := &users.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      users.RoleUser,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, apperrors.Storage("create user", err)
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, apperrors.Storage("generate tokens", err)
	}
	return &AuthResponse{User: toUserResponse(user), Tokens: *tokens}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apperrors.Authorization("invalid email or password")
		}
		return nil, apperrors.Storage("lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Authorization("invalid email or password")
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, apperrors.Storage("generate tokens", err)
	}
	return &AuthResponse{User: toUserResponse(user), Tokens: *tokens}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, apperrors.Authorization("invalid refresh token")
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apperrors.Authorization("invalid refresh token")
		}
		return nil, apperrors.Storage("lookup user", err)
	}

	return s.generateTokenPair(user)
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return apperrors.NotFound("user", userID.String())
		}
		return apperrors.Storage("lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperrors.Authorization("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Storage("hash password", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return apperrors.Storage("update password", err)
	}
	return nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apperrors.NotFound("user", userID.String())
		}
		return nil, apperrors.Storage("lookup user", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *service) generateTokenPair(user *users.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.JWTExpiresIn)

	accessClaims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "voyago",
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "voyago",
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshExpiresIn)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(time.Until(accessExpiry).Seconds()),
	}, nil
}

func (s *service) parseToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

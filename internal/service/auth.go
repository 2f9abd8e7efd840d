package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/hash"
	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
	"github.com/mshelkov/marketplace/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	AdminSecret   string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.NewAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.NewRefreshToken(user.ID, user.Role, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	row := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		JTI:       claims.ID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.AddRefreshToken(ctx, &row); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) register(ctx context.Context, email, password, name, role string) (*models.User, *TokenPair, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Role:         role,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, nil, ErrUserExists
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

func (s *AuthService) Register(ctx context.Context, email, password, name, adminKey string) (*models.User, *TokenPair, error) {
	role := models.RoleUser
	if s.AdminSecret != "" && adminKey == s.AdminSecret {
		role = models.RoleAdmin
	}
	return s.register(ctx, email, password, name, role)
}

func (s *AuthService) RegisterSeller(ctx context.Context, email, password, name string) (*models.User, *TokenPair, error) {
	return s.register(ctx, email, password, name, models.RoleOwner)
}

// Login deliberately returns the same error for an unknown email and a
// wrong password, so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, nil, ErrValidation
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the stored token: the old JTI is revoked and the new row
// inserted atomically, so reusing a rotated token fails as invalid.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrRefreshExpired
		}
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.Repo.RefreshByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored.Token != tokens.Sha256Hex(rawRefresh) {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.NewAccessToken(userID, stored.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.NewRefreshToken(userID, stored.Role, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}
	newClaims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	newRow := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		JTI:       newClaims.ID,
		UserID:    userID,
		Role:      stored.Role,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, &newRow); err != nil {
		if errors.Is(err, repo.ErrTokenExpired) {
			return nil, ErrRefreshExpired
		}
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	return s.Repo.RevokeRefreshByHash(ctx, tokens.Sha256Hex(rawRefresh))
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.UserWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfilePatch struct {
	Name   *string
	Phone  *string
	Avatar *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrValidation
		}
		user.Name = name
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SetRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleOwner, models.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	user, err := s.Repo.UpdateUserRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

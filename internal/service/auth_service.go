package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"newshub/internal/config"
	"newshub/internal/middleware"
	"newshub/internal/models"
	"newshub/internal/repository"
	"newshub/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService handles registration, login, and the token lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	rdb      *redis.Client
}

// RegisterInput is the payload for creating an account. DeviceID and
// PushToken are optional and identify the mobile device registering.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	DeviceID    string
	PushToken   string
}

// NewAuthService creates a new AuthService. rdb may be nil; logout then
// degrades to a client-side token discard.
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg, rdb: rdb}
}

// Register creates a new account and returns the user with a token pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *models.TokenPair, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, models.NewConflictError("Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, models.NewConflictError("Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
		DeviceID:     in.DeviceID,
		PushToken:    in.PushToken,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return user, pair, nil
}

// Login authenticates by username or email and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, *models.TokenPair, error) {
	if identifier == "" || password == "" {
		return nil, nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return nil, nil, err
		}
	}
	if user == nil || !user.IsActive {
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token is returned unchanged; clients keep using it until it
// expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired refresh token")
	}
	if typ, _ := claims["type"].(string); typ != tokenTypeRefresh {
		return nil, models.NewUnauthorizedError("Token is not a refresh token")
	}

	subStr, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid refresh token subject")
	}

	// The account must still exist and be active
	user, err := s.userRepo.GetByID(ctx, uint(userID))
	if err != nil {
		return nil, models.NewUnauthorizedError("Account no longer available")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is deactivated")
	}

	accessTTL := time.Duration(s.cfg.AccessTokenTTLH) * time.Hour
	access, err := s.signToken(user.ID, tokenTypeAccess, accessTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

// UpdateDevice records the caller's current device and push token. Empty
// values leave the stored ones untouched.
func (s *AuthService) UpdateDevice(ctx context.Context, userID uint, deviceID, pushToken string) error {
	if deviceID == "" && pushToken == "" {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if deviceID != "" {
		user.DeviceID = deviceID
	}
	if pushToken != "" {
		user.PushToken = pushToken
	}
	return s.userRepo.Update(ctx, user)
}

// Logout revokes the presented access token and detaches the device's push
// token. It always succeeds from the client's point of view: an unparseable
// token or missing Redis simply means there is nothing to revoke
// server-side.
func (s *AuthService) Logout(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return
	}

	// stop pushing to the device that just logged out
	if subStr, _ := claims["sub"].(string); subStr != "" {
		if userID, err := strconv.ParseUint(subStr, 10, 32); err == nil {
			if user, err := s.userRepo.GetByID(ctx, uint(userID)); err == nil {
				user.PushToken = ""
				user.DeviceID = ""
				_ = s.userRepo.Update(ctx, user)
			}
		}
	}

	if s.rdb == nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	ttl := time.Until(time.Unix(expiryOf(claims), 0))
	if ttl <= 0 {
		return
	}
	s.rdb.Set(ctx, middleware.BlacklistKey(jti), "1", ttl)
}

// Profile returns the account behind the user ID.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func expiryOf(claims jwt.MapClaims) int64 {
	switch v := claims["exp"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// issueTokenPair signs a fresh access and refresh token for the user.
func (s *AuthService) issueTokenPair(userID uint) (*models.TokenPair, error) {
	accessTTL := time.Duration(s.cfg.AccessTokenTTLH) * time.Hour
	refreshTTL := time.Duration(s.cfg.RefreshTokenTTLH) * time.Hour

	access, err := s.signToken(userID, tokenTypeAccess, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, tokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"type": tokenType,
		"iss":  "newshub-api",
		"aud":  "newshub-client",
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

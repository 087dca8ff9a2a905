package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/commerce-management/internal"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*UserInfo, error)
	Login(dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolvePrincipal(claims *Claims) (*Principal, error)
}

type RepositoryAPI interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(user *userDatamodel.User) (string, error)
	GenerateRefreshToken(user *userDatamodel.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service performs authentication business logic: registration, credential
// verification and token issuance.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with the default role. Duplicate email is a
// conflict, checked before the insert so the caller gets a typed rejection
// rather than a store error.
func (s *Service) Register(dto RegisterDTO) (*UserInfo, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("register: password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         string(RoleUser),
		Department:   dto.Department,
		Position:     dto.Position,
		IsActive:     true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("register: insert failed", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", row.ID, "email", row.Email)
	return toUserInfo(row), nil
}

// Login verifies credentials and returns the user together with a fresh
// access/refresh token pair.
func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("login: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to authenticate", err)
	}
	if row == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !row.IsActive {
		return nil, internal.ErrUserInactive
	}

	tokens, err := s.issueTokens(row)
	if err != nil {
		s.logger.Error("login: token generation failed", "error", err, "user_id", row.ID)
		return nil, internal.NewInternalError("failed to authenticate", err)
	}

	s.logger.Info("user logged in", "user_id", row.ID, "email", row.Email)
	return &LoginResponse{User: *toUserInfo(row), Tokens: tokens}, nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair. Access
// tokens are rejected here; only the refresh class is accepted.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	row, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		s.logger.Error("refresh: user lookup failed", "error", err, "user_id", claims.UserID)
		return AuthTokens{}, internal.NewInternalError("failed to refresh tokens", err)
	}
	if row == nil {
		return AuthTokens{}, ErrPrincipalNotFound
	}
	if !row.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	tokens, err := s.issueTokens(row)
	if err != nil {
		s.logger.Error("refresh: token generation failed", "error", err, "user_id", row.ID)
		return AuthTokens{}, internal.NewInternalError("failed to refresh tokens", err)
	}
	return tokens, nil
}

// ValidateAccessToken validates a bearer token and requires the access class.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// ResolvePrincipal loads the current state of the token's subject. The token
// being valid is not enough: the account must still exist and be active.
func (s *Service) ResolvePrincipal(claims *Claims) (*Principal, error) {
	row, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		s.logger.Error("resolve principal: lookup failed", "error", err, "user_id", claims.UserID)
		return nil, internal.NewInternalError("failed to resolve user", err)
	}
	if row == nil {
		return nil, ErrPrincipalNotFound
	}
	if !row.IsActive {
		return nil, internal.ErrUserInactive
	}

	return &Principal{
		ID:       row.ID,
		Email:    row.Email,
		Name:     row.Name,
		Role:     Role(row.Role),
		IsActive: row.IsActive,
	}, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(row *userDatamodel.User) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(row)
	if err != nil {
		return AuthTokens{}, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(row)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func toUserInfo(row *userDatamodel.User) *UserInfo {
	return &UserInfo{
		ID:         row.ID,
		Email:      row.Email,
		Name:       row.Name,
		Role:       Role(row.Role),
		Department: row.Department,
		Position:   row.Position,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
	}
}

// JWTTokenGenerator signs both token classes with one symmetric secret; the
// token_type claim tells them apart.
type JWTTokenGenerator struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:          []byte(secret),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(user *userDatamodel.User) (string, error) {
	return j.sign(user, TokenTypeAccess, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(user *userDatamodel.User) (string, error) {
	return j.sign(user, TokenTypeRefresh, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(user *userDatamodel.User, tokenType TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      Role(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken parses and verifies a token of either class, mapping parse
// failures to the distinct expired/invalid signals.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

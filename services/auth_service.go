package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthInvalidInput       AuthServiceError = "geçersiz kayıt verisi"
	ErrAuthInvalidEmail       AuthServiceError = "geçersiz e-posta adresi"
	ErrAuthWeakPassword       AuthServiceError = "şifre en az 8 karakter olmalı; küçük harf, büyük harf ve rakam içermelidir"
	ErrAuthInvalidToken       AuthServiceError = "geçersiz veya süresi dolmuş token"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthResult başarılı giriş/kayıt sonucu.
type AuthResult struct {
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// TokenClaims erişim token'ının içeriği.
type TokenClaims struct {
	UserID uint            `json:"uid"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
	secret   string
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService varsayılan bağımlılıklarla servis oluşturur.
func NewAuthService() IAuthService {
	cfg := configs.Get()
	return NewAuthServiceWith(repositories.NewUserRepository(), cfg.JWTSecret, time.Duration(cfg.TokenTTLHour)*time.Hour)
}

// NewAuthServiceWith bağımlılıkları dışarıdan alır (test ve DI için).
func NewAuthServiceWith(userRepo repositories.IUserRepository, secret string, tokenTTL time.Duration) IAuthService {
	return &AuthService{userRepo: userRepo, secret: secret, tokenTTL: tokenTTL, now: time.Now}
}

// ValidatePassword şifre politikasını uygular: en az 8 karakter,
// en az bir küçük harf, bir büyük harf ve bir rakam.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrAuthWeakPassword
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return ErrAuthWeakPassword
	}
	return nil
}

// Register yeni kullanıcı kaydeder ve oturum token'ı döndürür.
// Yeni kullanıcılar Client rolüyle başlar; organizatörlük profil
// oluşturulduğunda verilir.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("%w: isim zorunludur", ErrAuthInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrAuthInvalidEmail
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrAuthEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleClient,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAuthEmailTaken
		}
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydedildi: ID %d, E-posta: %s", user.ID, user.Email)
	return s.issueToken(user)
}

// Login e-posta/şifre doğrulayıp oturum token'ı döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrAuthInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}

	return s.issueToken(user)
}

// issueToken kullanıcı için imzalı JWT üretir.
func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	claims := TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		configslog.Log.Error("Token imzalanamadı", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, err
	}

	return &AuthResult{Token: signed, User: *user, ExpiresAt: expiresAt}, nil
}

// ParseToken imzayı doğrulayıp claim'leri döndürür. Middleware kullanır.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen imza yöntemi: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrAuthInvalidToken
	}
	return claims, nil
}

var _ IAuthService = (*AuthService)(nil)

package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newAuthService(users *fakeUserRepo) *AuthService {
	svc := NewAuthServiceWith(users, testSecret, time.Hour).(*AuthService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"geçerli", "Parola123", true},
		{"çok kısa", "Pa1", false},
		{"küçük harf yok", "PAROLA123", false},
		{"büyük harf yok", "parola123", false},
		{"rakam yok", "ParolaParola", false},
		{"boş", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrAuthWeakPassword)
			}
		})
	}
}

func TestRegister_CreatesClientAndIssuesToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	result, err := svc.Register(context.Background(), "Ayşe Yılmaz", "  Ayse@Test.Local ", "Parola123")
	require.NoError(t, err)

	assert.Equal(t, "ayse@test.local", result.User.Email)
	assert.Equal(t, models.RoleClient, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, testNow.Add(time.Hour), result.ExpiresAt)

	// Şifre düz metin olarak saklanmaz.
	assert.NotEqual(t, "Parola123", result.User.PasswordHash)

	claims, err := ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, models.RoleClient, claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "  ", "a@b.co", "Parola123")
	assert.ErrorIs(t, err, ErrAuthInvalidInput)

	_, err = svc.Register(context.Background(), "Ad", "not-an-email", "Parola123")
	assert.ErrorIs(t, err, ErrAuthInvalidEmail)

	_, err = svc.Register(context.Background(), "Ad", "a@b.co", "zayif")
	assert.ErrorIs(t, err, ErrAuthWeakPassword)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), "Birinci", "ayni@test.local", "Parola123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "İkinci", "AYNI@test.local", "Parola123")
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestLogin_RoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), "Ali", "ali@test.local", "Parola123")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "ali@test.local", "Parola123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(context.Background(), "ali@test.local", "YanlisParola1")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), "yok@test.local", "Parola123")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestParseToken_WrongSecretOrGarbage(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	result, err := svc.Register(context.Background(), "Ali", "ali@test.local", "Parola123")
	require.NoError(t, err)

	_, err = ParseToken("baska-secret", result.Token)
	assert.ErrorIs(t, err, ErrAuthInvalidToken)

	_, err = ParseToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrAuthInvalidToken)
}

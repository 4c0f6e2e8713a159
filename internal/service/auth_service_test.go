package service

import (
	"testing"
	"time"

	"tuitionportal/internal/config"
	"tuitionportal/internal/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStudent() *model.Student {
	return &model.Student{
		ID:            42,
		StudentNumber: "2024001",
		FirstName:     "Juan Carlos",
		MiddleName:    "Santos",
		LastName:      "Dela Cruz",
		Course:        "BSIT",
		YearLevel:     2,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", ExpireHours: 1}
	student := testStudent()

	token, err := GenerateToken(cfg, student)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.StudentID)
	assert.Equal(t, "2024001", claims.StudentNumber)
	assert.NotEmpty(t, claims.ID, "jti 必须存在")
}

func TestParseTokenRejects(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", ExpireHours: 1}
	student := testStudent()

	valid, err := GenerateToken(cfg, student)
	require.NoError(t, err)

	// 用错误密钥签发的凭证
	wrongKey, err := GenerateToken(&config.JWTConfig{Secret: "other-secret", ExpireHours: 1}, student)
	require.NoError(t, err)

	// 已过期的凭证
	now := time.Now()
	expiredClaims := &Claims{
		StudentID:     student.ID,
		StudentNumber: student.StudentNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "空凭证", token: ""},
		{name: "乱码凭证", token: "not-a-jwt"},
		{name: "错误密钥", token: wrongKey},
		{name: "已过期", token: expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(cfg, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	// 正确凭证不受影响
	_, err = ParseToken(cfg, valid)
	assert.NoError(t, err)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tuitionportal/internal/config"
	"tuitionportal/internal/model"
	"tuitionportal/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("学号或密码错误")
	ErrInvalidToken       = errors.New("凭证无效或已过期")
)

// Claims 登录凭证，取代原来全局保存的"当前登录学生"
// 每个请求自带凭证，核心操作不依赖任何进程级会话状态
type Claims struct {
	StudentID     int64  `json:"student_id"`
	StudentNumber string `json:"student_number"`
	jwt.RegisteredClaims
}

// GenerateToken 签发学生登录凭证（HS256）
func GenerateToken(cfg *config.JWTConfig, student *model.Student) (string, error) {
	now := time.Now()
	claims := &Claims{
		StudentID:     student.ID,
		StudentNumber: student.StudentNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 校验并解析登录凭证
func ParseToken(cfg *config.JWTConfig, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type AuthService struct {
	studentRepo *repository.StudentRepository
	cfg         *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		studentRepo: repository.NewStudentRepository(db),
		cfg:         cfg,
	}
}

type LoginResult struct {
	Token         string `json:"token"`
	StudentID     int64  `json:"student_id"`
	StudentNumber string `json:"student_number"`
	FullName      string `json:"full_name"`
	Course        string `json:"course"`
	YearLevel     int    `json:"year_level"`
}

// Login 学号+密码登录，成功后签发凭证
// 学号不存在与密码错误返回同一个错误，不泄露哪个环节失败
func (s *AuthService) Login(ctx context.Context, studentNumber, password string) (*LoginResult, error) {
	student, err := s.studentRepo.GetByStudentNumber(ctx, studentNumber)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询学生失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(&s.cfg.JWT, student)
	if err != nil {
		return nil, fmt.Errorf("签发凭证失败: %w", err)
	}

	return &LoginResult{
		Token:         token,
		StudentID:     student.ID,
		StudentNumber: student.StudentNumber,
		FullName:      student.FullName(),
		Course:        student.Course,
		YearLevel:     student.YearLevel,
	}, nil
}

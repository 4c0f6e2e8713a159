package model

import (
	"strings"
	"time"
)

// Student 学生表
// 入学时创建，除登录凭证外不再变更
type Student struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentNumber string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"student_number"` // 学号
	FirstName     string    `gorm:"type:varchar(64);not null" json:"first_name"`
	MiddleName    string    `gorm:"type:varchar(64)" json:"middle_name"`
	LastName      string    `gorm:"type:varchar(64);not null" json:"last_name"`
	Course        string    `gorm:"type:varchar(32);not null" json:"course"`     // 专业，如 BSIT
	YearLevel     int       `gorm:"not null" json:"year_level"`                  // 年级
	Email         string    `gorm:"type:varchar(128)" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(128);not null" json:"-"`         // bcrypt 哈希
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Student) TableName() string {
	return "student"
}

// FullName 拼接完整姓名（中间名可为空）
func (s *Student) FullName() string {
	parts := []string{s.FirstName}
	if strings.TrimSpace(s.MiddleName) != "" {
		parts = append(parts, s.MiddleName)
	}
	parts = append(parts, s.LastName)
	return strings.Join(parts, " ")
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade 成绩表
// 入学时按 (学生, 科目, 学期) 创建，分数为空表示未出分
// 本系统只读该表，成绩录入由外部教务流程负责
type Grade struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID     int64            `gorm:"index;not null" json:"student_id"`
	SubjectCode   string           `gorm:"type:varchar(32);not null" json:"subject_code"`
	SubjectName   string           `gorm:"type:varchar(128);not null" json:"subject_name"`
	Units         decimal.Decimal  `gorm:"type:decimal(4,1);not null" json:"units"`
	PrelimGrade   *decimal.Decimal `gorm:"type:decimal(5,2)" json:"prelim_grade"`
	MidtermGrade  *decimal.Decimal `gorm:"type:decimal(5,2)" json:"midterm_grade"`
	FinalGrade    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"final_grade"`
	SemesterGrade *decimal.Decimal `gorm:"type:decimal(5,2)" json:"semester_grade"`
	Semester      string           `gorm:"type:varchar(32);not null" json:"semester"`
	AcademicYear  string           `gorm:"type:varchar(16);not null" json:"academic_year"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (Grade) TableName() string {
	return "grade"
}

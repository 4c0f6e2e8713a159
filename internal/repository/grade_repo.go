package repository

import (
	"context"

	"tuitionportal/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

// ListByStudent 查询学生某学期全部成绩，按科目代码排序
// 访问控制在服务层，仓储本身不做门禁
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64, semester, academicYear string) ([]*model.Grade, error) {
	var grades []*model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND semester = ? AND academic_year = ?", studentID, semester, academicYear).
		Order("subject_code ASC").
		Find(&grades).Error
	return grades, err
}

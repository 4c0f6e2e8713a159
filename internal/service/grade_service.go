package service

import (
	"context"
	"errors"

	"tuitionportal/internal/config"
	"tuitionportal/internal/model"
	"tuitionportal/internal/repository"

	"gorm.io/gorm"
)

// ErrGradesForbidden 成绩门禁拒绝，这是稳定的策略结果而非故障，重试无意义
var ErrGradesForbidden = errors.New("prelim 学费未缴清，暂不能查看成绩")

type GradeService struct {
	gradeRepo   *repository.GradeRepository
	accountRepo *repository.AccountRepository
	cfg         *config.Config
}

func NewGradeService(db *gorm.DB, cfg *config.Config) *GradeService {
	return &GradeService{
		gradeRepo:   repository.NewGradeRepository(db),
		accountRepo: repository.NewAccountRepository(db),
		cfg:         cfg,
	}
}

// GetStudentGrades 查询学生成绩，过门禁后才会触达成绩表
// 门禁只看已提交的账户状态，缴费提交成功后立即可见
func (s *GradeService) GetStudentGrades(ctx context.Context, studentID int64) ([]*model.Grade, error) {
	account, err := s.accountRepo.GetByStudent(ctx, studentID, s.cfg.Business.Semester, s.cfg.Business.AcademicYear)
	if err != nil {
		return nil, err
	}

	if !account.CanViewGrades() {
		return nil, ErrGradesForbidden
	}

	return s.gradeRepo.ListByStudent(ctx, studentID, s.cfg.Business.Semester, s.cfg.Business.AcademicYear)
}

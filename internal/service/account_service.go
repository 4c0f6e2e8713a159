package service

import (
	"context"

	"tuitionportal/internal/config"
	"tuitionportal/internal/model"
	"tuitionportal/internal/repository"

	"gorm.io/gorm"
)

type AccountService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	cfg             *config.Config
	db              *gorm.DB
}

func NewAccountService(db *gorm.DB, cfg *config.Config) *AccountService {
	return &AccountService{
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		cfg:             cfg,
		db:              db,
	}
}

// GetAccount 查询学生当前学期账户
func (s *AccountService) GetAccount(ctx context.Context, studentID int64) (*model.Account, error) {
	return s.accountRepo.GetByStudent(ctx, studentID, s.cfg.Business.Semester, s.cfg.Business.AcademicYear)
}

// CanTakeExams 学生是否已取得考试许可
func (s *AccountService) CanTakeExams(ctx context.Context, studentID int64) (bool, error) {
	account, err := s.GetAccount(ctx, studentID)
	if err != nil {
		return false, err
	}
	return account.ExamPermission == model.ExamPermitted, nil
}

// ListTransactions 查询学生账单流水，最新在前
func (s *AccountService) ListTransactions(ctx context.Context, studentID int64, page, pageSize int) ([]*model.StudentTransaction, int64, error) {
	return s.transactionRepo.ListByStudent(ctx, studentID, page, pageSize)
}

package repository

import (
	"context"
	"errors"

	"tuitionportal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAccountNotFound = errors.New("账户不存在")

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) GetByStudent(ctx context.Context, studentID int64, semester, academicYear string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND semester = ? AND academic_year = ?", studentID, semester, academicYear).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByStudentForUpdate 事务内加行锁读取账户，缴费的读-改-写必须走这里
func (r *AccountRepository) GetByStudentForUpdate(ctx context.Context, tx *gorm.DB, studentID int64, semester, academicYear string) (*model.Account, error) {
	var account model.Account
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND semester = ? AND academic_year = ?", studentID, semester, academicYear).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateBalances 持久化缴费后的账户字段，仅在缴费事务内调用
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"total_paid":        account.TotalPaid,
			"remaining_balance": account.RemainingBalance,
			"prelim_amount_due": account.PrelimAmountDue,
			"prelim_status":     account.PrelimStatus,
			"exam_permission":   account.ExamPermission,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) ListUnpaidPrelims(ctx context.Context, semester, academicYear string) ([]*model.Account, error) {
	var accounts []*model.Account
	err := r.db.WithContext(ctx).
		Where("semester = ? AND academic_year = ? AND prelim_status = ?", semester, academicYear, model.PaymentStatusUnpaid).
		Find(&accounts).Error
	return accounts, err
}

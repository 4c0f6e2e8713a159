package repository

import (
	"context"

	"tuitionportal/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create 追加一条流水，流水只增不改
func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.StudentTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

func (r *TransactionRepository) GetByTransactionNo(ctx context.Context, transactionNo string) (*model.StudentTransaction, error) {
	var trans model.StudentTransaction
	err := r.db.WithContext(ctx).Where("transaction_no = ?", transactionNo).First(&trans).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &trans, nil
}

func (r *TransactionRepository) GetByPaymentReference(ctx context.Context, reference string) (*model.StudentTransaction, error) {
	var trans model.StudentTransaction
	err := r.db.WithContext(ctx).Where("payment_reference = ?", reference).First(&trans).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &trans, nil
}

// ListByStudent 按学生查询流水，最新在前
func (r *TransactionRepository) ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]*model.StudentTransaction, int64, error) {
	var transactions []*model.StudentTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&model.StudentTransaction{}).Where("student_id = ?", studentID)

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error

	return transactions, total, err
}

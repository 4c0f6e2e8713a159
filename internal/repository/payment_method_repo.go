package repository

import (
	"context"
	"errors"

	"tuitionportal/internal/model"

	"gorm.io/gorm"
)

var ErrMethodNotFound = errors.New("缴费渠道不存在")

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// ListActive 仅返回启用中的渠道
func (r *PaymentMethodRepository) ListActive(ctx context.Context) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&methods).Error
	return methods, err
}

// GetActiveByCode 按代码查启用中的渠道，未启用视同不存在
func (r *PaymentMethodRepository) GetActiveByCode(ctx context.Context, methodCode string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("method_code = ? AND active = ?", methodCode, true).
		First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *PaymentMethodRepository) CodeExists(ctx context.Context, methodCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PaymentMethod{}).
		Where("method_code = ?", methodCode).
		Count(&count).Error
	return count > 0, err
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod 缴费渠道表
// 费率规则由数据驱动：固定服务费 + 按比例手续费，两者可叠加
// 参考数据，极少变更
type PaymentMethod struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MethodCode    string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"method_code"`
	MethodName    string          `gorm:"type:varchar(64);not null" json:"method_name"`
	ServiceFee    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"service_fee"`    // 固定服务费（货币单位）
	PercentageFee decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"percentage_fee"`  // 按比例手续费（百分比）
	Description   string          `gorm:"type:varchar(256)" json:"description"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_method"
}

// FeeBreakdown 费用明细，缴费预览与确认共用
type FeeBreakdown struct {
	BaseAmount    decimal.Decimal `json:"base_amount"`
	ServiceFee    decimal.Decimal `json:"service_fee"`
	PercentageFee decimal.Decimal `json:"percentage_fee"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Calculate 按渠道费率计算费用明细（纯函数，可重复调用做预览）
//
// percentage_fee = base × 费率 / 100，四舍五入保留两位
func (m *PaymentMethod) Calculate(baseAmount decimal.Decimal) FeeBreakdown {
	percentageFee := baseAmount.Mul(m.PercentageFee).Div(decimal.NewFromInt(100)).Round(2)
	totalFees := m.ServiceFee.Add(percentageFee)

	return FeeBreakdown{
		BaseAmount:    baseAmount,
		ServiceFee:    m.ServiceFee,
		PercentageFee: percentageFee,
		TotalFees:     totalFees,
		TotalAmount:   baseAmount.Add(totalFees),
	}
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 账单流水类型常量
// ============================================================================

const (
	TransactionTypeAssessment = "ASSESSMENT" // 学费评估（正数，增加欠费）
	TransactionTypePayment    = "PAYMENT"    // 缴费（负数，减少欠费）
	TransactionTypeFee        = "FEE"        // 附加费（正数）
)

// ============================================================================
// 账单流水实体
// ============================================================================

// StudentTransaction 学生账单流水表
// 记录账户的每一笔资金变动，是对账单的核心依据
//
// 【重要】流水表设计原则：
// 1. 只追加，不修改，不删除 —— 保证账单可追溯
// 2. 缴费流水必须携带缴费参考号，参考号全局唯一 —— 便于对账
// 3. 金额带符号：评估/附加费为正，缴费为负
type StudentTransaction struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNo    string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_no"` // 流水号（全局唯一）
	StudentID        int64           `gorm:"index;not null" json:"student_id"`
	AccountID        int64           `gorm:"index;not null" json:"account_id"`
	Type             string          `gorm:"type:varchar(20);not null" json:"type"`
	Description      string          `gorm:"type:varchar(256);not null" json:"description"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod    string          `gorm:"type:varchar(32)" json:"payment_method,omitempty"`              // 缴费渠道代码，仅 PAYMENT
	PaymentReference *string         `gorm:"type:varchar(64);uniqueIndex" json:"payment_reference,omitempty"` // 缴费参考号，仅 PAYMENT
	CreatedAt        time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (StudentTransaction) TableName() string {
	return "student_transaction"
}

// IsPayment 是否为缴费流水
func (t *StudentTransaction) IsPayment() bool {
	return t.Type == TransactionTypePayment
}

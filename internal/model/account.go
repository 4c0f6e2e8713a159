package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 学期账户状态常量
// ============================================================================

// PaymentStatus 各阶段（prelim/midterm/final）的缴费状态，闭合枚举
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// ExamPermission 考试/成绩查看许可，由 prelim 缴费状态推导
type ExamPermission string

const (
	ExamNotPermitted ExamPermission = "NOT_PERMITTED"
	ExamPermitted    ExamPermission = "PERMITTED"
)

// ============================================================================
// 学期账户实体
// ============================================================================

// Account 学生学期账户表
// 每个 (学生, 学期, 学年) 一条记录，是整个缴费系统的核心数据
//
// 【不变式】
// 1. remaining_balance = total_assessment - total_paid（带符号，负数=超缴）
// 2. prelim_status = PAID 当且仅当 prelim_amount_due <= 0
// 3. exam_permission = PERMITTED 当且仅当 prelim_status = PAID
// 账户字段只允许通过缴费事务变更
type Account struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID        int64           `gorm:"not null;uniqueIndex:uk_student_term,priority:1" json:"student_id"`
	Semester         string          `gorm:"type:varchar(32);not null;uniqueIndex:uk_student_term,priority:2" json:"semester"`
	AcademicYear     string          `gorm:"type:varchar(16);not null;uniqueIndex:uk_student_term,priority:3" json:"academic_year"`
	TotalAssessment  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_assessment"`
	TotalPaid        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_paid"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"remaining_balance"`
	PrelimAmountDue  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"prelim_amount_due"`
	MidtermAmountDue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"midterm_amount_due"`
	FinalAmountDue   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"final_amount_due"`
	PrelimStatus     PaymentStatus   `gorm:"type:varchar(16);not null;default:UNPAID" json:"prelim_status"`
	MidtermStatus    PaymentStatus   `gorm:"type:varchar(16);not null;default:UNPAID" json:"midterm_status"`
	FinalStatus      PaymentStatus   `gorm:"type:varchar(16);not null;default:UNPAID" json:"final_status"`
	ExamPermission   ExamPermission  `gorm:"type:varchar(16);not null;default:NOT_PERMITTED" json:"exam_permission"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}

// ApplyPayment 把一笔缴费落到账户状态上（纯内存计算，持久化由调用方负责）
//
// 规则：
// 1. total_paid 累加，remaining_balance 相应减少，允许变为负数（超缴）
// 2. prelim_amount_due 扣减后在 0 处截断，超出部分不结转到 midterm/final
// 3. prelim 欠费清零后翻转状态并放开考试许可，且不会因后续缴费回退
func (a *Account) ApplyPayment(amount decimal.Decimal) {
	a.TotalPaid = a.TotalPaid.Add(amount)
	a.RemainingBalance = a.RemainingBalance.Sub(amount)

	a.PrelimAmountDue = a.PrelimAmountDue.Sub(amount)
	if a.PrelimAmountDue.IsNegative() {
		a.PrelimAmountDue = decimal.Zero
	}

	if !a.PrelimAmountDue.IsPositive() {
		a.PrelimStatus = PaymentStatusPaid
		a.ExamPermission = ExamPermitted
	}
}

// IsPrelimPaid prelim 阶段是否已缴清
func (a *Account) IsPrelimPaid() bool {
	return a.PrelimStatus == PaymentStatusPaid
}

// CanViewGrades 成绩访问门：prelim 缴清才可查看成绩
func (a *Account) CanViewGrades() bool {
	return a.IsPrelimPaid()
}

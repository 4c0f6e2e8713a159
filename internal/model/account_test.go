package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestAccount(totalAssessment, prelimDue string) *Account {
	total := dec(totalAssessment)
	return &Account{
		StudentID:        1,
		Semester:         "FIRST SEMESTER",
		AcademicYear:     "2025-2026",
		TotalAssessment:  total,
		TotalPaid:        decimal.Zero,
		RemainingBalance: total,
		PrelimAmountDue:  dec(prelimDue),
		PrelimStatus:     PaymentStatusUnpaid,
		MidtermStatus:    PaymentStatusUnpaid,
		FinalStatus:      PaymentStatusUnpaid,
		ExamPermission:   ExamNotPermitted,
	}
}

func TestApplyPaymentFullPrelim(t *testing.T) {
	// prelim 欠费 6500，一次缴清
	account := newTestAccount("45000.00", "6500.00")

	account.ApplyPayment(dec("6500.00"))

	assert.True(t, account.PrelimAmountDue.IsZero(), "prelim_amount_due = %s", account.PrelimAmountDue)
	assert.Equal(t, PaymentStatusPaid, account.PrelimStatus)
	assert.Equal(t, ExamPermitted, account.ExamPermission)
	assert.True(t, account.TotalPaid.Equal(dec("6500.00")))
	assert.True(t, account.RemainingBalance.Equal(dec("38500.00")))
}

func TestApplyPaymentPartialPrelim(t *testing.T) {
	// 部分缴费后 prelim 仍欠费，状态不翻转
	account := newTestAccount("45000.00", "6500.00")

	account.ApplyPayment(dec("3000.00"))

	assert.True(t, account.PrelimAmountDue.Equal(dec("3500.00")), "prelim_amount_due = %s", account.PrelimAmountDue)
	assert.Equal(t, PaymentStatusUnpaid, account.PrelimStatus)
	assert.Equal(t, ExamNotPermitted, account.ExamPermission)
}

// 不变式：任意缴费序列后 remaining_balance = total_assessment - total_paid
func TestApplyPaymentBalanceInvariant(t *testing.T) {
	account := newTestAccount("45000.00", "14850.00")
	payments := []string{"3000.00", "6500.00", "5350.00", "123.45", "40000.00"}

	for _, p := range payments {
		account.ApplyPayment(dec(p))

		expected := account.TotalAssessment.Sub(account.TotalPaid)
		assert.True(t, account.RemainingBalance.Equal(expected),
			"缴费 %s 后 remaining=%s expected=%s", p, account.RemainingBalance, expected)

		// prelim_status = PAID 当且仅当欠费 <= 0，且许可随状态联动
		if account.PrelimAmountDue.IsPositive() {
			assert.Equal(t, PaymentStatusUnpaid, account.PrelimStatus)
			assert.Equal(t, ExamNotPermitted, account.ExamPermission)
		} else {
			assert.Equal(t, PaymentStatusPaid, account.PrelimStatus)
			assert.Equal(t, ExamPermitted, account.ExamPermission)
		}
	}

	// 缴费序列合计 54973.45，超出评估，余额为负
	assert.True(t, account.RemainingBalance.IsNegative(), "remaining = %s", account.RemainingBalance)
	assert.True(t, account.TotalPaid.Equal(dec("54973.45")))
}

func TestApplyPaymentOverpayment(t *testing.T) {
	// 超缴：prelim 欠费在 0 处截断，超出部分只进余额，不结转 midterm/final
	account := newTestAccount("45000.00", "6500.00")
	account.MidtermAmountDue = dec("15000.00")
	account.FinalAmountDue = dec("15000.00")

	account.ApplyPayment(dec("10000.00"))

	assert.True(t, account.PrelimAmountDue.IsZero())
	assert.True(t, account.MidtermAmountDue.Equal(dec("15000.00")), "midterm 不受超缴影响")
	assert.True(t, account.FinalAmountDue.Equal(dec("15000.00")), "final 不受超缴影响")
	assert.True(t, account.RemainingBalance.Equal(dec("35000.00")))
	assert.Equal(t, PaymentStatusPaid, account.PrelimStatus)
}

// 单调性：许可放开后不会因后续缴费回退
func TestExamPermissionMonotonic(t *testing.T) {
	account := newTestAccount("45000.00", "6500.00")

	account.ApplyPayment(dec("6500.00"))
	assert.Equal(t, ExamPermitted, account.ExamPermission)

	account.ApplyPayment(dec("1000.00"))
	assert.Equal(t, ExamPermitted, account.ExamPermission)
	assert.Equal(t, PaymentStatusPaid, account.PrelimStatus)
}

func TestCanViewGrades(t *testing.T) {
	account := newTestAccount("45000.00", "6500.00")
	assert.False(t, account.CanViewGrades(), "prelim 未缴清不能看成绩")

	account.ApplyPayment(dec("6500.00"))
	assert.True(t, account.CanViewGrades())
}

package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPaymentMethodCalculate(t *testing.T) {
	tests := []struct {
		name              string
		serviceFee        string
		percentageFee     string
		baseAmount        string
		wantServiceFee    string
		wantPercentageFee string
		wantTotalAmount   string
	}{
		{
			name:              "无附加费渠道",
			serviceFee:        "0.00",
			percentageFee:     "0.00",
			baseAmount:        "6500.00",
			wantServiceFee:    "0.00",
			wantPercentageFee: "0.00",
			wantTotalAmount:   "6500.00",
		},
		{
			name:              "固定服务费+比例手续费",
			serviceFee:        "25.00",
			percentageFee:     "2.00",
			baseAmount:        "15000.00",
			wantServiceFee:    "25.00",
			wantPercentageFee: "300.00",
			wantTotalAmount:   "15325.00",
		},
		{
			name:              "仅固定服务费",
			serviceFee:        "15.00",
			percentageFee:     "0.00",
			baseAmount:        "10000.00",
			wantServiceFee:    "15.00",
			wantPercentageFee: "0.00",
			wantTotalAmount:   "10015.00",
		},
		{
			name:              "仅比例手续费",
			serviceFee:        "0.00",
			percentageFee:     "3.50",
			baseAmount:        "14850.00",
			wantServiceFee:    "0.00",
			wantPercentageFee: "519.75",
			wantTotalAmount:   "15369.75",
		},
		{
			name:              "比例手续费四舍五入到分",
			serviceFee:        "0.00",
			percentageFee:     "3.50",
			baseAmount:        "15.00",
			wantServiceFee:    "0.00",
			wantPercentageFee: "0.53", // 0.525 逢五进位
			wantTotalAmount:   "15.53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := &PaymentMethod{
				MethodCode:    "TEST",
				ServiceFee:    dec(tt.serviceFee),
				PercentageFee: dec(tt.percentageFee),
				Active:        true,
			}

			got := method.Calculate(dec(tt.baseAmount))

			assert.True(t, got.ServiceFee.Equal(dec(tt.wantServiceFee)), "service_fee = %s", got.ServiceFee)
			assert.True(t, got.PercentageFee.Equal(dec(tt.wantPercentageFee)), "percentage_fee = %s", got.PercentageFee)
			assert.True(t, got.TotalFees.Equal(got.ServiceFee.Add(got.PercentageFee)), "total_fees = %s", got.TotalFees)
			assert.True(t, got.TotalAmount.Equal(dec(tt.wantTotalAmount)), "total_amount = %s", got.TotalAmount)
			assert.True(t, got.BaseAmount.Equal(dec(tt.baseAmount)))
		})
	}
}

// 费用公式：total_amount = base + service_fee + round(base*pct/100)
func TestPaymentMethodCalculateFormula(t *testing.T) {
	methods := []*PaymentMethod{
		{MethodCode: "UNIONBANK", ServiceFee: dec("0.00"), PercentageFee: dec("0.00")},
		{MethodCode: "DRAGONPAY", ServiceFee: dec("25.00"), PercentageFee: dec("2.00")},
		{MethodCode: "BPI", ServiceFee: dec("15.00"), PercentageFee: dec("0.00")},
		{MethodCode: "BDO", ServiceFee: dec("20.00"), PercentageFee: dec("0.00")},
		{MethodCode: "BDO_BILLS", ServiceFee: dec("10.00"), PercentageFee: dec("0.00")},
		{MethodCode: "BUKAS", ServiceFee: dec("0.00"), PercentageFee: dec("3.50")},
	}
	bases := []string{"0.01", "1.00", "33.33", "3000.00", "6500.00", "14850.00", "45000.00"}

	for _, m := range methods {
		for _, b := range bases {
			base := dec(b)
			got := m.Calculate(base)

			expected := base.
				Add(m.ServiceFee).
				Add(base.Mul(m.PercentageFee).Div(dec("100")).Round(2))
			assert.True(t, got.TotalAmount.Equal(expected),
				"%s base=%s: total=%s expected=%s", m.MethodCode, b, got.TotalAmount, expected)
		}
	}
}

// 纯函数：相同入参重复计算结果完全一致
func TestPaymentMethodCalculateIdempotent(t *testing.T) {
	method := &PaymentMethod{MethodCode: "DRAGONPAY", ServiceFee: dec("25.00"), PercentageFee: dec("2.00")}
	base := dec("15000.00")

	first := method.Calculate(base)
	second := method.Calculate(base)

	assert.True(t, first.ServiceFee.Equal(second.ServiceFee))
	assert.True(t, first.PercentageFee.Equal(second.PercentageFee))
	assert.True(t, first.TotalFees.Equal(second.TotalFees))
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
}

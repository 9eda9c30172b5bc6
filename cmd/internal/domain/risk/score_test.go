package risk_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"providerrisk/cmd/internal/domain/risk"
)

func TestScore_Rules(t *testing.T) {
	cases := []struct {
		name string
		in   risk.Inputs
		want int
	}{
		{name: "no risk factors", in: risk.Inputs{}, want: 0},
		{name: "pep only", in: risk.Inputs{PEPFlag: true}, want: 60},
		{name: "sanctions only", in: risk.Inputs{SanctionList: true}, want: 40},
		{name: "one late payment", in: risk.Inputs{LatePayments: 1}, want: 10},
		{name: "late payments capped", in: risk.Inputs{LatePayments: 5}, want: 30},
		{name: "pep and one late payment", in: risk.Inputs{PEPFlag: true, LatePayments: 1}, want: 70},
		{name: "pep sanctions two late", in: risk.Inputs{PEPFlag: true, SanctionList: true, LatePayments: 2}, want: 120},
		{name: "everything", in: risk.Inputs{PEPFlag: true, SanctionList: true, LatePayments: 3}, want: risk.MaxScore},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, risk.Score(tc.in))
		})
	}
}

func TestScore_LatePaymentsSaturate(t *testing.T) {
	prev := 0
	for n := 0; n <= 50; n++ {
		got := risk.Score(risk.Inputs{LatePayments: n})
		assert.Equal(t, min(10*n, 30), got, "late_payments=%d", n)
		assert.GreaterOrEqual(t, got, prev, "score must not decrease at late_payments=%d", n)
		prev = got
	}
}

func TestScore_ExtremeLatePayments(t *testing.T) {
	assert.Equal(t, 30, risk.Score(risk.Inputs{LatePayments: math.MaxInt}))
}

func TestScore_NegativeLatePaymentsAddNothing(t *testing.T) {
	assert.Equal(t, 0, risk.Score(risk.Inputs{LatePayments: -4}))
	assert.Equal(t, 60, risk.Score(risk.Inputs{PEPFlag: true, LatePayments: -1}))
}

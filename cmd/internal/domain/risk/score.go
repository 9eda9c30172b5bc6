package risk

const (
	PEPWeight         = 60
	SanctionWeight    = 40
	LatePaymentWeight = 10
	LatePaymentCap    = 30

	// MaxScore is reached with PEP + sanctions + at least 3 late payments.
	MaxScore = PEPWeight + SanctionWeight + LatePaymentCap
)

// Inputs are the factors a provider is evaluated on.
type Inputs struct {
	PEPFlag      bool
	SanctionList bool
	LatePayments int
}

// Score maps the inputs into an integer in [0, MaxScore].
//
// Negative late payment counts contribute nothing.
func Score(in Inputs) int {
	score := 0
	if in.PEPFlag {
		score += PEPWeight
	}

	if in.SanctionList {
		score += SanctionWeight
	}
	return score + latePaymentsContribution(in.LatePayments)
}

func latePaymentsContribution(late int) int {
	if late <= 0 {
		return 0
	}

	// Compare before multiplying so huge counts cannot overflow
	if late >= LatePaymentCap/LatePaymentWeight {
		return LatePaymentCap
	}
	return late * LatePaymentWeight
}

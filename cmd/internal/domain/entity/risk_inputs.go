package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"providerrisk/cmd/internal/domain/risk"
)

// RiskInputs is persisted as a JSON document in the requests table.
type RiskInputs struct {
	PEPFlag      bool `json:"pep_flag"`
	SanctionList bool `json:"sanction_list"`
	LatePayments int  `json:"late_payments"`
}

func (r RiskInputs) Score() int {
	return risk.Score(risk.Inputs(r))
}

func (r RiskInputs) Value() (driver.Value, error) {
	bytes, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (r *RiskInputs) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("failed to scan risk inputs: unsupported type %T", value)
	}
}

package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IncomeKind tells which shape an Income holds.
type IncomeKind int

const (
	IncomeFixed IncomeKind = iota
	IncomeSources
)

// MainIncomeLabel names the single line a fixed income renders as.
const MainIncomeLabel = "Main Income"

// IncomeSource is one named contribution to a monthly income.
type IncomeSource struct {
	Source   string  `json:"source"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// Income is a monthly income that is either a single fixed amount or a list
// of sources. On the wire it is a JSON number or a JSON array; the shape is
// resolved once on decode so callers never branch on raw JSON.
type Income struct {
	kind    IncomeKind
	amount  float64
	sources []IncomeSource
}

// FixedIncome returns an income of a single amount.
func FixedIncome(amount float64) Income {
	return Income{kind: IncomeFixed, amount: amount}
}

// SourcesIncome returns an income made of the given sources.
func SourcesIncome(sources []IncomeSource) Income {
	cp := make([]IncomeSource, len(sources))
	copy(cp, sources)
	return Income{kind: IncomeSources, sources: cp}
}

// Kind returns the shape of the income.
func (i Income) Kind() IncomeKind { return i.kind }

// Sources returns a copy of the income sources; nil for a fixed income.
func (i Income) Sources() []IncomeSource {
	if i.kind != IncomeSources {
		return nil
	}
	cp := make([]IncomeSource, len(i.sources))
	copy(cp, i.sources)
	return cp
}

// Total returns the monthly amount across all sources.
func (i Income) Total() float64 {
	if i.kind == IncomeFixed {
		return i.amount
	}
	var total float64
	for _, s := range i.sources {
		total += s.Amount
	}
	return total
}

// Lines returns the income as a list of sources. A fixed income becomes a
// single "Main Income" line.
func (i Income) Lines() []IncomeSource {
	if i.kind == IncomeFixed {
		return []IncomeSource{{Source: MainIncomeLabel, Amount: i.amount}}
	}
	return i.Sources()
}

// MarshalJSON encodes a fixed income as a number and sources as an array.
func (i Income) MarshalJSON() ([]byte, error) {
	if i.kind == IncomeSources {
		if i.sources == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(i.sources)
	}
	return json.Marshal(i.amount)
}

// UnmarshalJSON accepts null, a number, or an array of sources.
func (i *Income) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*i = FixedIncome(0)
		return nil
	case data[0] == '[':
		var sources []IncomeSource
		if err := json.Unmarshal(data, &sources); err != nil {
			return fmt.Errorf("decoding income sources: %w", err)
		}
		*i = SourcesIncome(sources)
		return nil
	default:
		var amount float64
		if err := json.Unmarshal(data, &amount); err != nil {
			return fmt.Errorf("income must be a number or a list of sources: %w", err)
		}
		*i = FixedIncome(amount)
		return nil
	}
}

// Value stores the income as its JSON text.
func (i Income) Value() (driver.Value, error) {
	b, err := i.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads an income stored by Value.
func (i *Income) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*i = FixedIncome(0)
		return nil
	case []byte:
		return i.UnmarshalJSON(v)
	case string:
		return i.UnmarshalJSON([]byte(v))
	case float64:
		*i = FixedIncome(v)
		return nil
	case int64:
		*i = FixedIncome(float64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Income", src)
	}
}

// GormDataType keeps the column a plain text column on every dialect.
func (Income) GormDataType() string {
	return "text"
}

package sqlconfig

import (
	"fmt"
	"strings"
)

// Kind is the income/expense classification shared by categories,
// transactions and monthly templates. Amounts are stored unsigned; the
// kind carries the sign.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", value)
	}
}

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (k Kind) String() string {
	return string(k)
}

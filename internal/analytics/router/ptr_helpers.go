package router

import (
	"strings"

	"github.com/shopspring/decimal"
)

// stringPtr returns a trimmed pointer or nil when the input is empty.
func stringPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// int64Ptr returns a pointer to the provided int64 value.
func int64Ptr(value int64) *int64 {
	return &value
}

// moneyPtr converts a decimal amount to the float column BigQuery stores.
// Exact amounts stay in Postgres; the warehouse copy is for aggregates.
func moneyPtr(value decimal.Decimal) *float64 {
	f, _ := value.Float64()
	return &f
}

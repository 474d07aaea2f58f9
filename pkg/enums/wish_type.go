package enums

import "fmt"

// WishType maps to the wish_type enum in Postgres.
type WishType string

const (
	WishTypeErrand   WishType = "errand"
	WishTypeDelivery WishType = "delivery"
	WishTypeShopping WishType = "shopping"
)

var validWishTypes = []WishType{
	WishTypeErrand,
	WishTypeDelivery,
	WishTypeShopping,
}

// String implements fmt.Stringer.
func (w WishType) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WishType.
func (w WishType) IsValid() bool {
	for _, candidate := range validWishTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWishType converts raw input into a WishType.
func ParseWishType(value string) (WishType, error) {
	for _, candidate := range validWishTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wish type %q", value)
}

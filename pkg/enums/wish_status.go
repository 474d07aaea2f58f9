package enums

import "fmt"

// WishStatus tracks the lifecycle of a wish.
type WishStatus string

const (
	WishStatusPending    WishStatus = "pending"
	WishStatusAccepted   WishStatus = "accepted"
	WishStatusInProgress WishStatus = "in_progress"
	WishStatusCompleted  WishStatus = "completed"
	WishStatusCancelled  WishStatus = "cancelled"
)

var validWishStatuses = []WishStatus{
	WishStatusPending,
	WishStatusAccepted,
	WishStatusInProgress,
	WishStatusCompleted,
	WishStatusCancelled,
}

// String implements fmt.Stringer.
func (w WishStatus) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WishStatus.
func (w WishStatus) IsValid() bool {
	for _, candidate := range validWishStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the wish can no longer change state.
func (w WishStatus) IsTerminal() bool {
	return w == WishStatusCompleted || w == WishStatusCancelled
}

// ParseWishStatus converts raw input into a WishStatus.
func ParseWishStatus(value string) (WishStatus, error) {
	for _, candidate := range validWishStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wish status %q", value)
}

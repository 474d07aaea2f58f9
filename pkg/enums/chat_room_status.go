package enums

import "fmt"

// ChatRoomStatus tracks the negotiation state of a chat room.
type ChatRoomStatus string

const (
	ChatRoomStatusActive    ChatRoomStatus = "active"
	ChatRoomStatusApproved  ChatRoomStatus = "approved"
	ChatRoomStatusCompleted ChatRoomStatus = "completed"
	ChatRoomStatusCancelled ChatRoomStatus = "cancelled"
)

var validChatRoomStatuses = []ChatRoomStatus{
	ChatRoomStatusActive,
	ChatRoomStatusApproved,
	ChatRoomStatusCompleted,
	ChatRoomStatusCancelled,
}

// String implements fmt.Stringer.
func (c ChatRoomStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChatRoomStatus.
func (c ChatRoomStatus) IsValid() bool {
	for _, candidate := range validChatRoomStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the room can no longer change state.
func (c ChatRoomStatus) IsTerminal() bool {
	return c == ChatRoomStatusCompleted || c == ChatRoomStatusCancelled
}

// ParseChatRoomStatus converts raw input into a ChatRoomStatus.
func ParseChatRoomStatus(value string) (ChatRoomStatus, error) {
	for _, candidate := range validChatRoomStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chat room status %q", value)
}

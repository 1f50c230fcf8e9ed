// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeConflict     ErrorType = "CONFLICT"
	ErrTypeInternal     ErrorType = "INTERNAL"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	RoomID    uint
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewUnauthorizedError(userID, roomID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeUnauthorized,
		Operation: "authorization",
		Message:   "user is not a participant of this room",
		UserID:    userID,
		RoomID:    roomID,
	}
}

func NewNotFoundError(operation string, roomID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeNotFound,
		Operation: operation,
		Message:   "chat room not found",
		RoomID:    roomID,
	}
}

// NewConflictError marks a lost room-creation race. The registry recovers it
// internally by re-reading the pair; callers never see this type.
func NewConflictError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeConflict, Operation: operation, Message: "duplicate room creation", Cause: cause}
}

func NewInternalError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeInternal, Operation: operation, Message: msg, Cause: cause}
}

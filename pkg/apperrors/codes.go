package apperrors

// ErrorCode - машинно-читаемый код ошибки
type ErrorCode string

const (
	// Системные
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodePersistenceError ErrorCode = "PERSISTENCE_ERROR"

	// Ошибки клиента
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeModerationLocked ErrorCode = "MODERATION_LOCKED"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

package apperrors

import (
	"fmt"
	"net/http"
)

// ModerationLockedMessage - текст ошибки при попытке изменить запись вне статуса "new"
const ModerationLockedMessage = "record not editable, status is not 'new'"

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда сентинел репозитория нужно отдать клиенту.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "pereval", "record not found", http.StatusNotFound)
}

// ModerationLocked - запись уже ушла на модерацию, редактирование запрещено (400)
func ModerationLocked(status string) *AppError {
	return New(CodeModerationLocked, "moderation", ModerationLockedMessage, http.StatusBadRequest).
		WithDetails(map[string]string{"status": status})
}

// PersistenceError - сбой хранилища во время корректной операции (500).
// Сообщение несет причину, как того требует ответ "save error: ...".
func PersistenceError(err error) *AppError {
	return Wrap(err, CodePersistenceError, "store", fmt.Sprintf("save error: %v", err), http.StatusInternalServerError)
}

// NoRecordsFound - у автора с таким email нет ни одной записи (404)
func NoRecordsFound(email string) *AppError {
	return New(CodeNotFound, "pereval", "no records found", http.StatusNotFound).
		WithDetails(map[string]string{"user__email": email})
}

package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse - конверт ответа эндпоинтов /submitData/ (POST и GET).
// Поле Status дублирует HTTP-код, как в исходном API.
type StatusResponse struct {
	Status  int         `json:"status"`
	Message *string     `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
	ID      *uint       `json:"id"`
}

// StateResponse - конверт ответа PATCH: state=1 успех, state=0 отказ
type StateResponse struct {
	State   int         `json:"state"`
	Message *string     `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// Normalize приводит любую ошибку к *AppError.
// Неизвестные ошибки становятся InternalError; вне Debug причина скрывается.
func (h *GinErrorHandler) Normalize(err error) *AppError {
	appErr, ok := AsAppError(err)
	if ok {
		return appErr
	}
	appErr = InternalError(err)
	if h.Debug {
		appErr.Details = err.Error()
	}
	return appErr
}

// HandleGinError отвечает конвертом StatusResponse
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr := h.Normalize(err)
	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error", "error", appErr.Unwrap(), "code", appErr.Code)
	}
	msg := appErr.Message
	c.AbortWithStatusJSON(appErr.HTTPCode, StatusResponse{
		Status:  appErr.HTTPCode,
		Message: &msg,
		Errors:  ValidationDetails(appErr),
	})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// ValidationDetails отдает детали только для ошибок валидации:
// у остальных кодов Details служебные и в конверт не попадают.
func ValidationDetails(appErr *AppError) interface{} {
	if appErr.Code != CodeValidationFailed {
		return nil
	}
	return appErr.Details
}

// HandleStateError отвечает конвертом StateResponse (state=0); используется PATCH
func HandleStateError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	appErr := handler.Normalize(err)
	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error", "error", appErr.Unwrap(), "code", appErr.Code)
	}
	msg := appErr.Message
	c.AbortWithStatusJSON(appErr.HTTPCode, StateResponse{
		State:   0,
		Message: &msg,
		Errors:  ValidationDetails(appErr),
	})
}

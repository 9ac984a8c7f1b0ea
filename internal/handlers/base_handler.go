package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"fstr_backend/internal/logger"
	"fstr_backend/internal/services/dto"
	"fstr_backend/internal/validator"
	"fstr_backend/pkg/apperrors"
	"fstr_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nonFieldErrors - ключ для ошибок, не относящихся к конкретному полю (битый JSON)
const nonFieldErrors = "non_field_errors"

// ErrorResponder пишет ошибку в нужном конверте: status (POST/GET) или state (PATCH)
type ErrorResponder func(c *gin.Context, err error)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context.
// Должен вызываться в каждом хендлере, который обращается к сервисам.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// Привязка и валидация
// ============================================================================

// BindAndValidate_JSON - тело запроса, ошибки в конверте status
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindJSON, apperrors.HandleError)
}

// BindAndValidate_JSONState - тело PATCH, ошибки в конверте state
func (h *BaseHandler) BindAndValidate_JSONState(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindJSON, apperrors.HandleStateError)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindQuery, apperrors.HandleError)
}

func (h *BaseHandler) bindAndValidate(c *gin.Context, obj interface{}, bind func(interface{}) error, respond ErrorResponder) bool {
	ctx := c.Request.Context()

	if err := bind(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind request", "error", err.Error(), "path", c.Request.URL.Path)
		respond(c, apperrors.ValidationError(decodeErrorDetails(err)))
		return false
	}

	if n, ok := obj.(dto.Normalizer); ok {
		n.Normalize()
	}

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			respond(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			respond(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// decodeErrorDetails превращает ошибку декодирования JSON в карту "поле -> сообщения"
func decodeErrorDetails(err error) map[string][]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string][]string{
			typeErr.Field: {fmt.Sprintf("Incorrect type. Expected %s, got %s.", typeErr.Type.Kind(), typeErr.Value)},
		}
	}
	if errors.Is(err, io.EOF) {
		return map[string][]string{nonFieldErrors: {"Request body is empty."}}
	}
	return map[string][]string{nonFieldErrors: {"JSON parse error - " + err.Error()}}
}

// ============================================================================
// Обработка ошибок сервисов
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.handleServiceError(c, err, apperrors.HandleError)
}

// HandleServiceStateError - то же, но в конверте state (PATCH)
func (h *BaseHandler) HandleServiceStateError(c *gin.Context, err error) {
	h.handleServiceError(c, err, apperrors.HandleStateError)
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error, respond ErrorResponder) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"code", appErr.Code,
			"path", c.Request.URL.Path,
		)
		respond(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		respond(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// Парсинг
// ============================================================================

// ParseParamID разбирает положительный целый id из пути.
// Нецелый или нулевой id означает несуществующую запись (404), а не ошибку клиента.
func ParseParamID(c *gin.Context, key string) (uint, error) {
	valueStr := c.Param(key)
	value, err := strconv.ParseUint(valueStr, 10, 0)
	if err != nil || value == 0 {
		return 0, apperrors.ErrNotFound(fmt.Errorf("invalid %s %q", key, valueStr))
	}
	return uint(value), nil
}

package handlers

import (
	"net/http"

	"fstr_backend/internal/metrics"
	"fstr_backend/internal/services"
	"fstr_backend/internal/services/dto"
	"fstr_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PerevalHandler struct {
	*BaseHandler
	perevalService services.PerevalService
	metrics        *metrics.Metrics
}

func NewPerevalHandler(base *BaseHandler, perevalService services.PerevalService, m *metrics.Metrics) *PerevalHandler {
	return &PerevalHandler{
		BaseHandler:    base,
		perevalService: perevalService,
		metrics:        m,
	}
}

func (h *PerevalHandler) RegisterRoutes(r *gin.RouterGroup) {
	submit := r.Group("/submitData")
	{
		submit.POST("/", h.SubmitData)
		submit.GET("/", h.GetPerevalsByEmail)
		submit.GET("/:id/", h.GetPereval)
		submit.PATCH("/:id/", h.UpdatePereval)
	}
}

// SubmitData godoc
// @Summary Добавить перевал
// @Description Создает автора (или находит по email), координаты, перевал и фото одной транзакцией. Статус всегда "new".
// @Tags submitData
// @Accept json
// @Produce json
// @Param pereval body dto.SubmitPerevalRequest true "Данные перевала"
// @Success 201 {object} dto.SubmitResponse
// @Failure 400 {object} apperrors.StatusResponse "Некорректные данные"
// @Failure 500 {object} apperrors.StatusResponse "Ошибка сохранения"
// @Router /submitData/ [post]
func (h *PerevalHandler) SubmitData(c *gin.Context) {
	var req dto.SubmitPerevalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.perevalService.Submit(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// status 200 в теле - так отвечал исходный API
	c.JSON(http.StatusCreated, dto.SubmitResponse{
		Status:  http.StatusOK,
		Message: nil,
		ID:      &id,
	})
}

// GetPerevalsByEmail godoc
// @Summary Перевалы автора
// @Description Возвращает все записи автора с указанным email
// @Tags submitData
// @Produce json
// @Param user__email query string true "Email автора"
// @Success 200 {array} dto.PerevalResponse
// @Failure 400 {object} apperrors.StatusResponse "Не указан email"
// @Failure 404 {object} apperrors.StatusResponse "Записей нет"
// @Router /submitData/ [get]
func (h *PerevalHandler) GetPerevalsByEmail(c *gin.Context) {
	var query dto.EmailFilterQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	perevals, err := h.perevalService.GetPerevalsByEmail(h.GetDB(c), query.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, perevals)
}

// GetPereval godoc
// @Summary Получить перевал
// @Description Запись целиком: автор, координаты, категории сложности, фото
// @Tags submitData
// @Produce json
// @Param id path int true "ID перевала"
// @Success 200 {object} dto.PerevalResponse
// @Failure 404 {object} apperrors.StatusResponse "Запись не найдена"
// @Router /submitData/{id}/ [get]
func (h *PerevalHandler) GetPereval(c *gin.Context) {
	id, err := ParseParamID(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	pereval, err := h.perevalService.GetPereval(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pereval)
}

// UpdatePereval godoc
// @Summary Редактировать перевал
// @Description Частичная правка, пока запись в статусе "new". Данные автора не меняются. Присланный список images заменяет все фото.
// @Tags submitData
// @Accept json
// @Produce json
// @Param id path int true "ID перевала"
// @Param pereval body dto.UpdatePerevalRequest true "Изменяемые поля"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} apperrors.StateResponse "Запись на модерации или некорректные данные"
// @Failure 404 {object} apperrors.StateResponse "Запись не найдена"
// @Failure 500 {object} apperrors.StateResponse "Ошибка сохранения"
// @Router /submitData/{id}/ [patch]
func (h *PerevalHandler) UpdatePereval(c *gin.Context) {
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.metrics.PerevalUpdate(metrics.OutcomeNotFound)
		apperrors.HandleStateError(c, err)
		return
	}

	var req dto.UpdatePerevalRequest
	if !h.BindAndValidate_JSONState(c, &req) {
		h.metrics.PerevalUpdate(metrics.OutcomeInvalid)
		return
	}

	if err := h.perevalService.UpdatePereval(h.GetDB(c), id, &req); err != nil {
		h.HandleServiceStateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateResponse{State: 1, Message: nil})
}

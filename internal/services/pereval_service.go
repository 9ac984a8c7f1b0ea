package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fstr_backend/database"
	"fstr_backend/internal/email"
	"fstr_backend/internal/logger"
	"fstr_backend/internal/metrics"
	"fstr_backend/internal/models"
	"fstr_backend/internal/repositories"
	"fstr_backend/internal/services/dto"
	"fstr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// submitterAttempts - сколько раз повторяем поиск/создание автора при гонке на уникальном email
const submitterAttempts = 3

// Notifier сообщает модераторам о новой записи
type Notifier interface {
	NotifyNewPereval(ctx context.Context, notice email.PerevalNotice) error
}

// PerevalService - подача, чтение и правка записей о перевалах.
// Все методы принимают db (пул или транзакцию) с контекстом запроса.
type PerevalService interface {
	Submit(db *gorm.DB, req *dto.SubmitPerevalRequest) (uint, error)
	GetPereval(db *gorm.DB, id uint) (*dto.PerevalResponse, error)
	GetPerevalsByEmail(db *gorm.DB, email string) ([]dto.PerevalResponse, error)
	UpdatePereval(db *gorm.DB, id uint, req *dto.UpdatePerevalRequest) error

	// Внешняя модерация (CLI), не HTTP
	SetStatus(db *gorm.DB, id uint, status models.PerevalStatus) error
	CountByStatus(db *gorm.DB) (map[models.PerevalStatus]int64, error)
}

type perevalService struct {
	perevalRepo   repositories.PerevalRepository
	submitterRepo repositories.SubmitterRepository
	notifier      Notifier
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewPerevalService(
	perevalRepo repositories.PerevalRepository,
	submitterRepo repositories.SubmitterRepository,
	notifier Notifier,
	m *metrics.Metrics,
) PerevalService {
	return &perevalService{
		perevalRepo:   perevalRepo,
		submitterRepo: submitterRepo,
		notifier:      notifier,
		metrics:       m,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ============================================================================
// Подача записи
// ============================================================================

// Submit создает автора (или переиспользует существующего), координаты, перевал и фото
// одной транзакцией. Статус всегда new, время подачи - серверное.
func (s *perevalService) Submit(db *gorm.DB, req *dto.SubmitPerevalRequest) (uint, error) {
	ctx := db.Statement.Context

	tx := db.Begin()
	if tx.Error != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(tx.Error)
	}
	defer tx.Rollback()

	submitter, err := s.resolveSubmitter(tx, &req.User)
	if err != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(err)
	}

	coords := &models.Coords{
		Latitude:  req.Coords.Latitude.Float64(),
		Longitude: req.Coords.Longitude.Float64(),
		Height:    req.Coords.Height.Int(),
	}
	if err := s.perevalRepo.CreateCoords(tx, coords); err != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(err)
	}

	pereval := &models.Pereval{
		BeautyTitle: req.BeautyTitle,
		Title:       req.Title,
		OtherTitles: req.OtherTitles,
		Connect:     req.Connect,
		AddTime:     s.now(),
		LevelWinter: deref(req.LevelWinter),
		LevelSummer: deref(req.LevelSummer),
		LevelAutumn: deref(req.LevelAutumn),
		LevelSpring: deref(req.LevelSpring),
		Status:      models.PerevalStatusNew,
		UserID:      submitter.ID,
		CoordsID:    coords.ID,
	}
	if err := s.perevalRepo.Create(tx, pereval); err != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(err)
	}

	if err := s.perevalRepo.CreateImages(tx, toImageModels(pereval.ID, req.Images)); err != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.metrics.PerevalSubmitFailed()
		return 0, apperrors.PersistenceError(err)
	}

	s.metrics.PerevalSubmitted()
	logger.CtxInfo(logger.WithPerevalID(ctx, pereval.ID), "Pereval submitted",
		"user_id", submitter.ID,
		"images", len(req.Images),
	)

	s.notifyModerators(ctx, email.PerevalNotice{
		ID:          pereval.ID,
		BeautyTitle: pereval.BeautyTitle,
		Title:       pereval.Title,
		Email:       submitter.Email,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		Height:      coords.Height,
		Images:      len(req.Images),
	})

	return pereval.ID, nil
}

// resolveSubmitter ищет автора по email, при отсутствии создает.
// Существующий автор возвращается без изменений: имя и телефон из запроса отбрасываются.
// Создание идет в точке сохранения: при нарушении уникального индекса (параллельная подача
// с тем же email) откатываемся к ней и перечитываем строку блокирующим чтением.
func (s *perevalService) resolveSubmitter(tx *gorm.DB, req *dto.UserRequest) (*models.Submitter, error) {
	var lastErr error
	for attempt := 1; attempt <= submitterAttempts; attempt++ {
		var submitter *models.Submitter

		// повторная попытка читает с блокировкой: обычный SELECT на REPEATABLE READ
		// вернул бы тот же снимок без строки конкурента
		find := s.submitterRepo.FindByEmail
		if attempt > 1 {
			find = s.submitterRepo.FindByEmailForShare
		}

		err := tx.Transaction(func(sp *gorm.DB) error {
			existing, err := find(sp, req.Email)
			if err == nil {
				submitter = existing
				return nil
			}
			if !errors.Is(err, repositories.ErrSubmitterNotFound) {
				return err
			}

			created := &models.Submitter{
				Email: req.Email,
				Fam:   req.Fam,
				Name:  req.Name,
				Otc:   req.Otc,
				Phone: req.Phone,
			}
			if err := s.submitterRepo.Create(sp, created); err != nil {
				return err
			}
			submitter = created
			return nil
		})
		if err == nil {
			return submitter, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}

		lastErr = err
		logger.CtxWarn(tx.Statement.Context, "Submitter email race, retrying lookup",
			"attempt", attempt,
		)
	}
	return nil, fmt.Errorf("resolve submitter after %d attempts: %w", submitterAttempts, lastErr)
}

func (s *perevalService) notifyModerators(ctx context.Context, notice email.PerevalNotice) {
	if s.notifier == nil {
		return
	}
	// Письмо не должно зависеть от завершения HTTP-запроса
	ctx = context.WithoutCancel(ctx)
	go func() {
		_ = s.notifier.NotifyNewPereval(ctx, notice)
	}()
}

// ============================================================================
// Чтение
// ============================================================================

func (s *perevalService) GetPereval(db *gorm.DB, id uint) (*dto.PerevalResponse, error) {
	pereval, err := s.perevalRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPerevalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPerevalResponse(pereval)
	return &resp, nil
}

func (s *perevalService) GetPerevalsByEmail(db *gorm.DB, emailAddr string) ([]dto.PerevalResponse, error) {
	submitter, err := s.submitterRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmitterNotFound) {
			return nil, apperrors.NoRecordsFound(emailAddr)
		}
		return nil, apperrors.InternalError(err)
	}

	perevals, err := s.perevalRepo.FindByUserID(db, submitter.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(perevals) == 0 {
		return nil, apperrors.NoRecordsFound(emailAddr)
	}

	return dto.NewPerevalResponses(perevals), nil
}

// ============================================================================
// Правка (только в статусе new)
// ============================================================================

// UpdatePereval частично меняет запись, пока она не ушла на модерацию.
// Все изменения сначала собираются в памяти и пишутся одной транзакцией.
// Автор (user) из запроса никогда не применяется.
func (s *perevalService) UpdatePereval(db *gorm.DB, id uint, req *dto.UpdatePerevalRequest) error {
	ctx := logger.WithPerevalID(db.Statement.Context, id)

	tx := db.Begin()
	if tx.Error != nil {
		s.metrics.PerevalUpdate(metrics.OutcomeError)
		return apperrors.PersistenceError(tx.Error)
	}
	defer tx.Rollback()

	pereval, err := s.perevalRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPerevalNotFound) {
			s.metrics.PerevalUpdate(metrics.OutcomeNotFound)
			return apperrors.ErrNotFound(err)
		}
		s.metrics.PerevalUpdate(metrics.OutcomeError)
		return apperrors.PersistenceError(err)
	}

	if !pereval.Status.Editable() {
		s.metrics.PerevalUpdate(metrics.OutcomeLocked)
		logger.CtxWarn(ctx, "Update rejected by moderation gate", "status", pereval.Status)
		return apperrors.ModerationLocked(string(pereval.Status))
	}

	applyPerevalFields(pereval, req)

	var coords *models.Coords
	if req.Coords != nil {
		coords, err = s.perevalRepo.FindCoordsByID(tx, pereval.CoordsID)
		if err != nil {
			s.metrics.PerevalUpdate(metrics.OutcomeError)
			return apperrors.PersistenceError(err)
		}
		applyCoords(coords, req.Coords)
	}

	if err := s.persistUpdate(tx, pereval, coords, req.Images); err != nil {
		s.metrics.PerevalUpdate(metrics.OutcomeError)
		return apperrors.PersistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.metrics.PerevalUpdate(metrics.OutcomeError)
		return apperrors.PersistenceError(err)
	}

	s.metrics.PerevalUpdate(metrics.OutcomeOK)
	logger.CtxInfo(ctx, "Pereval updated",
		"coords_changed", coords != nil,
		"images_replaced", req.Images != nil,
	)
	return nil
}

func (s *perevalService) persistUpdate(tx *gorm.DB, pereval *models.Pereval, coords *models.Coords, images *[]dto.ImageRequest) error {
	if err := s.perevalRepo.UpdateFields(tx, pereval); err != nil {
		return err
	}
	if coords != nil {
		if err := s.perevalRepo.UpdateCoords(tx, coords); err != nil {
			return err
		}
	}
	// nil - фото не прислали, оставляем как есть; [] - удаляем все
	if images != nil {
		if err := s.perevalRepo.DeleteImages(tx, pereval.ID); err != nil {
			return err
		}
		if err := s.perevalRepo.CreateImages(tx, toImageModels(pereval.ID, *images)); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Модерация
// ============================================================================

func (s *perevalService) SetStatus(db *gorm.DB, id uint, status models.PerevalStatus) error {
	if !status.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown status %q", status))
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.PersistenceError(tx.Error)
	}
	defer tx.Rollback()

	pereval, err := s.perevalRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPerevalNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}

	if err := s.perevalRepo.SetStatus(tx, id, status); err != nil {
		return apperrors.PersistenceError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.PersistenceError(err)
	}

	s.metrics.StatusChanged(string(status))
	logger.CtxInfo(logger.WithPerevalID(db.Statement.Context, id), "Pereval status changed",
		"from", pereval.Status,
		"to", status,
	)
	return nil
}

func (s *perevalService) CountByStatus(db *gorm.DB) (map[models.PerevalStatus]int64, error) {
	counts, err := s.perevalRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return counts, nil
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

func applyPerevalFields(p *models.Pereval, req *dto.UpdatePerevalRequest) {
	setIfPresent(&p.BeautyTitle, req.BeautyTitle)
	setIfPresent(&p.Title, req.Title)
	setIfPresent(&p.OtherTitles, req.OtherTitles)
	setIfPresent(&p.Connect, req.Connect)
	setIfPresent(&p.LevelWinter, req.LevelWinter)
	setIfPresent(&p.LevelSummer, req.LevelSummer)
	setIfPresent(&p.LevelAutumn, req.LevelAutumn)
	setIfPresent(&p.LevelSpring, req.LevelSpring)
}

func applyCoords(c *models.Coords, req *dto.PatchCoordsRequest) {
	if req.Latitude != nil {
		c.Latitude = req.Latitude.Float64()
	}
	if req.Longitude != nil {
		c.Longitude = req.Longitude.Float64()
	}
	if req.Height != nil {
		c.Height = req.Height.Int()
	}
}

func toImageModels(perevalID uint, images []dto.ImageRequest) []models.PerevalImage {
	result := make([]models.PerevalImage, 0, len(images))
	for _, img := range images {
		result = append(result, models.PerevalImage{
			PerevalID: perevalID,
			Title:     img.Title,
			ImageURL:  img.ImageURL,
		})
	}
	return result
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

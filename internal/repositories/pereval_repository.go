package repositories

import (
	"errors"

	"fstr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPerevalNotFound = errors.New("pereval not found")
	ErrCoordsNotFound  = errors.New("coords not found")
)

type PerevalRepository interface {
	// Create operations
	CreateCoords(db *gorm.DB, coords *models.Coords) error
	Create(db *gorm.DB, pereval *models.Pereval) error
	CreateImages(db *gorm.DB, images []models.PerevalImage) error

	// Read operations
	FindByID(db *gorm.DB, id uint) (*models.Pereval, error)
	FindByIDForUpdate(db *gorm.DB, id uint) (*models.Pereval, error)
	FindByUserID(db *gorm.DB, userID uint) ([]models.Pereval, error)
	FindCoordsByID(db *gorm.DB, id uint) (*models.Coords, error)
	CountByStatus(db *gorm.DB) (map[models.PerevalStatus]int64, error)

	// Update operations
	UpdateFields(db *gorm.DB, pereval *models.Pereval) error
	UpdateCoords(db *gorm.DB, coords *models.Coords) error
	DeleteImages(db *gorm.DB, perevalID uint) error
	SetStatus(db *gorm.DB, id uint, status models.PerevalStatus) error
}

type PerevalRepositoryImpl struct{}

func NewPerevalRepository() PerevalRepository {
	return &PerevalRepositoryImpl{}
}

// --- Create ---

func (r *PerevalRepositoryImpl) CreateCoords(db *gorm.DB, coords *models.Coords) error {
	return db.Create(coords).Error
}

// Create пишет только строку pereval_added: автор и координаты уже созданы, фото пишутся отдельно
func (r *PerevalRepositoryImpl) Create(db *gorm.DB, pereval *models.Pereval) error {
	return db.Omit(clause.Associations).Create(pereval).Error
}

func (r *PerevalRepositoryImpl) CreateImages(db *gorm.DB, images []models.PerevalImage) error {
	if len(images) == 0 {
		return nil
	}
	return db.Create(&images).Error
}

// --- Read ---

func (r *PerevalRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Pereval, error) {
	var pereval models.Pereval
	err := withRelations(db).First(&pereval, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerevalNotFound
		}
		return nil, err
	}
	return &pereval, nil
}

// FindByIDForUpdate блокирует строку до конца транзакции (SELECT ... FOR UPDATE).
// SQLite блокировок строк не знает, там клауза опускается диалектом.
func (r *PerevalRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id uint) (*models.Pereval, error) {
	var pereval models.Pereval
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pereval, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerevalNotFound
		}
		return nil, err
	}
	return &pereval, nil
}

func (r *PerevalRepositoryImpl) FindByUserID(db *gorm.DB, userID uint) ([]models.Pereval, error) {
	var perevals []models.Pereval
	err := withRelations(db).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&perevals).Error
	return perevals, err
}

func (r *PerevalRepositoryImpl) FindCoordsByID(db *gorm.DB, id uint) (*models.Coords, error) {
	var coords models.Coords
	err := db.First(&coords, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoordsNotFound
		}
		return nil, err
	}
	return &coords, nil
}

func (r *PerevalRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.PerevalStatus]int64, error) {
	var rows []struct {
		Status models.PerevalStatus
		Count  int64
	}
	err := db.Model(&models.Pereval{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[models.PerevalStatus]int64, len(models.PerevalStatuses))
	for _, s := range models.PerevalStatuses {
		result[s] = 0
	}
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}

// --- Update ---

func (r *PerevalRepositoryImpl) UpdateFields(db *gorm.DB, pereval *models.Pereval) error {
	return db.Model(&models.Pereval{}).
		Where("id = ?", pereval.ID).
		Updates(pereval.UpdatableValues()).Error
}

func (r *PerevalRepositoryImpl) UpdateCoords(db *gorm.DB, coords *models.Coords) error {
	return db.Model(&models.Coords{}).
		Where("id = ?", coords.ID).
		Updates(map[string]interface{}{
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
			"height":    coords.Height,
		}).Error
}

func (r *PerevalRepositoryImpl) DeleteImages(db *gorm.DB, perevalID uint) error {
	return db.Where("pereval_id = ?", perevalID).Delete(&models.PerevalImage{}).Error
}

// SetStatus - единственная запись статуса; вызывается внешней модерацией (CLI), не HTTP.
// Существование записи проверяет вызывающий: MySQL не считает строку затронутой, если значение не изменилось.
func (r *PerevalRepositoryImpl) SetStatus(db *gorm.DB, id uint, status models.PerevalStatus) error {
	return db.Model(&models.Pereval{}).Where("id = ?", id).Update("status", status).Error
}

// withRelations подгружает автора, координаты и фото в порядке вставки
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Coords").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("pereval_images.id ASC")
		})
}

package repositories

import (
	"errors"

	"fstr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubmitterNotFound = errors.New("submitter not found")

type SubmitterRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.Submitter, error)
	FindByEmailForShare(db *gorm.DB, email string) (*models.Submitter, error)
	FindByID(db *gorm.DB, id uint) (*models.Submitter, error)
	Create(db *gorm.DB, submitter *models.Submitter) error
}

type SubmitterRepositoryImpl struct{}

func NewSubmitterRepository() SubmitterRepository {
	return &SubmitterRepositoryImpl{}
}

func (r *SubmitterRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Submitter, error) {
	var submitter models.Submitter
	err := db.Where("email = ?", email).First(&submitter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmitterNotFound
		}
		return nil, err
	}
	return &submitter, nil
}

// FindByEmailForShare - блокирующее чтение (FOR SHARE). Оно видит последнюю зафиксированную версию строки,
// а не снимок транзакции: на MySQL с REPEATABLE READ обычный SELECT не увидит автора,
// созданного параллельной транзакцией после первого поиска.
func (r *SubmitterRepositoryImpl) FindByEmailForShare(db *gorm.DB, email string) (*models.Submitter, error) {
	var submitter models.Submitter
	err := db.Clauses(clause.Locking{Strength: "SHARE"}).Where("email = ?", email).First(&submitter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmitterNotFound
		}
		return nil, err
	}
	return &submitter, nil
}

func (r *SubmitterRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Submitter, error) {
	var submitter models.Submitter
	err := db.First(&submitter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmitterNotFound
		}
		return nil, err
	}
	return &submitter, nil
}

// Create возвращает ошибку драйвера как есть: нарушение уникального email
// распознает вызывающий (database.IsUniqueViolation)
func (r *SubmitterRepositoryImpl) Create(db *gorm.DB, submitter *models.Submitter) error {
	return db.Create(submitter).Error
}

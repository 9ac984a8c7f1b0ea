package repositories_test

import (
	"testing"
	"time"

	"fstr_backend/internal/models"
	"fstr_backend/internal/repositories"
	"fstr_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPereval(t *testing.T, db *gorm.DB, emailAddr string, images ...string) *models.Pereval {
	t.Helper()

	perevalRepo := repositories.NewPerevalRepository()
	submitterRepo := repositories.NewSubmitterRepository()

	submitter, err := submitterRepo.FindByEmail(db, emailAddr)
	if err != nil {
		require.ErrorIs(t, err, repositories.ErrSubmitterNotFound)
		submitter = &models.Submitter{Email: emailAddr, Fam: "Пупкин"}
		require.NoError(t, submitterRepo.Create(db, submitter))
	}

	coords := &models.Coords{Latitude: 45.1, Longitude: 7.2, Height: 1200}
	require.NoError(t, perevalRepo.CreateCoords(db, coords))

	p := &models.Pereval{
		Title:    "Пхия",
		AddTime:  time.Now().UTC(),
		Status:   models.PerevalStatusNew,
		UserID:   submitter.ID,
		CoordsID: coords.ID,
	}
	require.NoError(t, perevalRepo.Create(db, p))

	var rows []models.PerevalImage
	for _, url := range images {
		rows = append(rows, models.PerevalImage{PerevalID: p.ID, Title: "фото", ImageURL: url})
	}
	require.NoError(t, perevalRepo.CreateImages(db, rows))
	return p
}

func TestPerevalRepository_FindByIDLoadsRelations(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPerevalRepository()

	p := seedPereval(t, db, "a@b.ru", "https://e.x/3.jpg", "https://e.x/1.jpg")

	got, err := repo.FindByID(db, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	require.NotNil(t, got.Coords)
	assert.Equal(t, "a@b.ru", got.User.Email)
	assert.Equal(t, 1200, got.Coords.Height)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://e.x/3.jpg", got.Images[0].ImageURL, "фото отдаются в порядке вставки")

	_, err = repo.FindByID(db, 404)
	assert.ErrorIs(t, err, repositories.ErrPerevalNotFound)
	_, err = repo.FindByIDForUpdate(db, 404)
	assert.ErrorIs(t, err, repositories.ErrPerevalNotFound)
	_, err = repo.FindCoordsByID(db, 404)
	assert.ErrorIs(t, err, repositories.ErrCoordsNotFound)
}

func TestPerevalRepository_FindByUserID(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPerevalRepository()

	first := seedPereval(t, db, "owner@b.ru")
	second := seedPereval(t, db, "owner@b.ru")
	seedPereval(t, db, "other@b.ru")

	got, err := repo.FindByUserID(db, first.UserID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	got, err = repo.FindByUserID(db, 999)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPerevalRepository_Updates(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPerevalRepository()

	p := seedPereval(t, db, "u@b.ru", "https://e.x/old.jpg")

	p.Title = "Новое"
	p.Connect = ""
	p.Status = models.PerevalStatusAccepted // UpdateFields статус не пишет
	require.NoError(t, repo.UpdateFields(db, p))

	coords, err := repo.FindCoordsByID(db, p.CoordsID)
	require.NoError(t, err)
	coords.Height = 0
	require.NoError(t, repo.UpdateCoords(db, coords))

	require.NoError(t, repo.DeleteImages(db, p.ID))
	require.NoError(t, repo.CreateImages(db, nil))

	got, err := repo.FindByID(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Новое", got.Title)
	assert.Equal(t, models.PerevalStatusNew, got.Status)
	assert.Equal(t, 0, got.Coords.Height, "нулевое значение тоже записывается")
	assert.Empty(t, got.Images)
}

func TestPerevalRepository_StatusAndCounts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPerevalRepository()

	p1 := seedPereval(t, db, "s@b.ru")
	seedPereval(t, db, "s@b.ru")

	require.NoError(t, repo.SetStatus(db, p1.ID, models.PerevalStatusRejected))

	counts, err := repo.CountByStatus(db)
	require.NoError(t, err)
	assert.Equal(t, map[models.PerevalStatus]int64{
		models.PerevalStatusNew:      1,
		models.PerevalStatusPending:  0,
		models.PerevalStatusAccepted: 0,
		models.PerevalStatusRejected: 1,
	}, counts)
}

func TestSubmitterRepository(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubmitterRepository()

	s := &models.Submitter{Email: "unique@b.ru", Name: "Вася"}
	require.NoError(t, repo.Create(db, s))

	byEmail, err := repo.FindByEmail(db, "unique@b.ru")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byEmail.ID)

	byID, err := repo.FindByID(db, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Вася", byID.Name)

	locked, err := repo.FindByEmailForShare(db, "unique@b.ru")
	require.NoError(t, err)
	assert.Equal(t, s.ID, locked.ID)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	_, err = repo.FindByEmailForShare(tx, "ghost@b.ru")
	assert.ErrorIs(t, err, repositories.ErrSubmitterNotFound)
	require.NoError(t, tx.Rollback().Error)

	_, err = repo.FindByEmail(db, "ghost@b.ru")
	assert.ErrorIs(t, err, repositories.ErrSubmitterNotFound)
	_, err = repo.FindByID(db, 999)
	assert.ErrorIs(t, err, repositories.ErrSubmitterNotFound)

	assert.Error(t, repo.Create(db, &models.Submitter{Email: "unique@b.ru"}))
}

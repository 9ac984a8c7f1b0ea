package dto

import (
	"encoding/json"
	"testing"
	"time"

	"fstr_backend/internal/models"
	"fstr_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	var c CoordsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"latitude": 45.3842, "longitude": " 7.1525 ", "height": "north"}`), &c))

	assert.Equal(t, Number("45.3842"), c.Latitude)
	assert.InDelta(t, 45.3842, c.Latitude.Float64(), 1e-9)
	assert.Equal(t, Number("7.1525"), c.Longitude)
	// нечисловое значение доживает до валидатора
	assert.Equal(t, Number("north"), c.Height)
}

func TestUpdateRequest_NullMeansAbsent(t *testing.T) {
	var req UpdatePerevalRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": null, "images": null, "coords": {"height": null}}`), &req))

	assert.Nil(t, req.Title)
	assert.Nil(t, req.Images)
	require.NotNil(t, req.Coords)
	assert.Nil(t, req.Coords.Height)

	req = UpdatePerevalRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"images": []}`), &req))
	require.NotNil(t, req.Images)
	assert.Empty(t, *req.Images)
}

func TestLevelAlias_FlatFieldWins(t *testing.T) {
	var req SubmitPerevalRequest
	body := `{"level_summer": "2А", "level": {"summer": "1А", "winter": "3Б"}, "user": {"email": "  Mixed@Case.RU "}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.Normalize()

	require.NotNil(t, req.LevelSummer)
	assert.Equal(t, "2А", *req.LevelSummer)
	require.NotNil(t, req.LevelWinter)
	assert.Equal(t, "3Б", *req.LevelWinter)
	assert.Nil(t, req.LevelAutumn)
	assert.Equal(t, "mixed@case.ru", req.User.Email)
}

func TestNewPerevalResponse(t *testing.T) {
	p := &models.Pereval{
		ID:          7,
		Title:       "Пхия",
		AddTime:     time.Date(2021, 9, 22, 13, 18, 13, 0, time.UTC),
		LevelAutumn: "1А",
		Status:      models.PerevalStatusPending,
		User:        &models.Submitter{Email: "a@b.ru", Fam: "Пупкин"},
		Coords:      &models.Coords{Latitude: 1.5, Longitude: 2.5, Height: 100},
	}

	resp := NewPerevalResponse(p)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "1А", resp.LevelAutumn)
	assert.Equal(t, "1А", resp.Level.Autumn)
	assert.Equal(t, "Пупкин", resp.User.Fam)
	assert.Equal(t, 100, resp.Coords.Height)
	assert.NotNil(t, resp.Images)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"images":[]`)
}

func TestSetStatusRequest_Validate(t *testing.T) {
	v := validator.New()

	req := SetStatusRequest{ID: 3, Status: " Accepted "}
	req.Normalize()
	assert.Equal(t, "accepted", req.Status)
	assert.NoError(t, v.Validate(&req))

	bad := SetStatusRequest{ID: 3, Status: "approved"}
	err := v.Validate(&bad)
	var vErr *validator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{`"approved" is not a valid choice.`}, vErr.Errors["status"])

	err = v.Validate(&SetStatusRequest{})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "id")
	assert.Contains(t, vErr.Errors, "status")
}

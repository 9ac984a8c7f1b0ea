package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"fstr_backend/internal/models"
	"fstr_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusEnvelope struct {
	Status  int                 `json:"status"`
	Message *string             `json:"message"`
	ID      *uint               `json:"id"`
	Errors  map[string][]string `json:"errors"`
}

type stateEnvelope struct {
	State   int                 `json:"state"`
	Message *string             `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func submit(t *testing.T, ts *helpers.TestServer, payload interface{}) uint {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/submitData/", payload)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var env statusEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	require.NotNil(t, env.ID)
	return *env.ID
}

func TestSubmitData_Created(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/submitData/", helpers.PerevalPayload("qwerty@mail.ru", "Пхия"))
	t.Logf("Ответ сервера: %s", body)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.JSONEq(t, `{"status":200,"message":null,"id":1}`, body)
}

func TestSubmitData_IgnoresClientStatusAndID(t *testing.T) {
	ts := helpers.NewTestServer(t)

	payload := helpers.PerevalPayload("client@example.com", "Подмена")
	payload["status"] = "accepted"
	payload["id"] = 500

	id := submit(t, ts, payload)
	assert.NotEqual(t, uint(500), id)

	var stored models.Pereval
	require.NoError(t, ts.DB.First(&stored, id).Error)
	assert.Equal(t, models.PerevalStatusNew, stored.Status)
}

func TestSubmitData_NumericCoordsAsNumbers(t *testing.T) {
	ts := helpers.NewTestServer(t)

	payload := helpers.PerevalPayload("numbers@example.com", "Числа")
	payload["coords"] = map[string]interface{}{"latitude": 45.5, "longitude": -7.25, "height": 1200.0}
	id := submit(t, ts, payload)

	res, body := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/submitData/%d/", id), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	coords := got["coords"].(map[string]interface{})
	assert.Equal(t, 45.5, coords["latitude"])
	assert.Equal(t, -7.25, coords["longitude"])
	assert.Equal(t, float64(1200), coords["height"])
}

func TestSubmitData_ValidationErrors(t *testing.T) {
	ts := helpers.NewTestServer(t)

	payload := helpers.PerevalPayload("not-an-email", "")
	payload["coords"] = map[string]interface{}{"latitude": "north", "longitude": "7.1", "height": "12.5"}
	payload["images"] = []map[string]interface{}{{"title": "Без ссылки"}}

	res, body := ts.SendRequest(t, http.MethodPost, "/submitData/", payload)
	t.Logf("Ответ сервера: %s", body)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var env statusEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Nil(t, env.ID)
	require.NotNil(t, env.Message)

	for _, field := range []string{"title", "user.email", "coords.latitude", "coords.height", "images[0].image_url"} {
		assert.Contains(t, env.Errors, field, "ожидалась ошибка по полю %s", field)
	}
	assert.NotContains(t, env.Errors, "coords.longitude")

	assert.Zero(t, helpers.CountRows(t, ts.DB, &models.Pereval{}))
}

func TestSubmitData_MalformedJSON(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/submitData/", `{"title": `)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var env statusEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Contains(t, env.Errors, "non_field_errors")
}

func TestGetPereval(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("reader@example.com", "Читаемый"))

	res, body := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/submitData/%d/", id), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Читаемый", got["title"])
	assert.Equal(t, "new", got["status"])
	assert.Equal(t, "1А", got["level_summer"])
	assert.Equal(t, "1А", got["level"].(map[string]interface{})["summer"])
	assert.Equal(t, "reader@example.com", got["user"].(map[string]interface{})["email"])
	assert.Len(t, got["images"], 2)
}

func TestGetPereval_NotFound(t *testing.T) {
	ts := helpers.NewTestServer(t)

	for _, path := range []string{"/submitData/999/", "/submitData/abc/", "/submitData/0/"} {
		res, body := ts.SendRequest(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, path)

		var env statusEnvelope
		require.NoError(t, json.Unmarshal([]byte(body), &env))
		assert.Equal(t, http.StatusNotFound, env.Status)
	}
}

func TestGetPerevalsByEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)
	submit(t, ts, helpers.PerevalPayload("list@example.com", "Первый"))
	submit(t, ts, helpers.PerevalPayload("list@example.com", "Второй"))

	res, body := ts.SendRequest(t, http.MethodGet, "/submitData/?user__email=LIST@example.com", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Первый", list[0]["title"])
	assert.Equal(t, "Второй", list[1]["title"])

	res, body = ts.SendRequest(t, http.MethodGet, "/submitData/?user__email=ghost@example.com", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "no records found")

	res, body = ts.SendRequest(t, http.MethodGet, "/submitData/", nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	var env statusEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Contains(t, env.Errors, "user__email")
}

func TestUpdatePereval_Success(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("patch@example.com", "До"))

	patch := map[string]interface{}{
		"title":  "После",
		"coords": map[string]interface{}{"height": "1500"},
		"user":   map[string]interface{}{"email": "other@example.com"},
		"images": []interface{}{},
	}
	res, body := ts.SendRequest(t, http.MethodPatch, fmt.Sprintf("/submitData/%d/", id), patch)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"state":1,"message":null}`, body)

	_, body = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/submitData/%d/", id), nil)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "После", got["title"])
	assert.Equal(t, float64(1500), got["coords"].(map[string]interface{})["height"])
	assert.Equal(t, "patch@example.com", got["user"].(map[string]interface{})["email"])
	assert.Empty(t, got["images"])
}

func TestUpdatePereval_Locked(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("locked@example.com", "Закрыт"))
	require.NoError(t, ts.DB.Model(&models.Pereval{}).Where("id = ?", id).Update("status", "accepted").Error)

	res, body := ts.SendRequest(t, http.MethodPatch, fmt.Sprintf("/submitData/%d/", id), map[string]interface{}{"title": "Нельзя"})
	t.Logf("Ответ сервера: %s", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"state":0,"message":"record not editable, status is not 'new'"}`, body)
}

func TestUpdatePereval_InvalidAndMissing(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("invalid@example.com", "Перевал"))

	res, body := ts.SendRequest(t, http.MethodPatch, fmt.Sprintf("/submitData/%d/", id),
		map[string]interface{}{"coords": map[string]interface{}{"latitude": "x"}})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var env stateEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, 0, env.State)
	assert.Contains(t, env.Errors, "coords.latitude")

	res, body = ts.SendRequest(t, http.MethodPatch, "/submitData/404/", map[string]interface{}{"title": "Нет"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, 0, env.State)
}

func TestUnsupportedMethods(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("methods@example.com", "Методы"))

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		res, _ := ts.SendRequest(t, method, fmt.Sprintf("/submitData/%d/", id), nil)
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode, method)
	}
	assert.Equal(t, int64(1), helpers.CountRows(t, ts.DB, &models.Pereval{}))
}

func TestServiceEndpoints(t *testing.T) {
	ts := helpers.NewTestServer(t)
	submit(t, ts, helpers.PerevalPayload("ops@example.com", "Метрики"))

	res, _ := ts.SendRequest(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "fstr_perevals_submitted_total 1")

	res, _ = ts.SendRequest(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUpdatePereval_UserAcceptedInAnyShape(t *testing.T) {
	ts := helpers.NewTestServer(t)
	id := submit(t, ts, helpers.PerevalPayload("keeper@example.com", "Перевал"))
	path := fmt.Sprintf("/submitData/%d/", id)

	bodies := []string{
		`{"title": "X", "user": {"email": "not-an-email"}}`,
		`{"user": "whatever"}`,
		`{"user": 42}`,
		`{"user": null}`,
	}
	for _, body := range bodies {
		res, resBody := ts.SendRequest(t, http.MethodPatch, path, body)
		t.Logf("PATCH %s -> %s", body, resBody)
		assert.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.JSONEq(t, `{"state":1,"message":null}`, resBody, body)
	}

	var submitters []models.Submitter
	require.NoError(t, ts.DB.Find(&submitters).Error)
	require.Len(t, submitters, 1)
	assert.Equal(t, "keeper@example.com", submitters[0].Email)
	assert.Equal(t, "Пупкин", submitters[0].Fam)

	_, body := ts.SendRequest(t, http.MethodGet, path, nil)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "X", got["title"])
	assert.Equal(t, "keeper@example.com", got["user"].(map[string]interface{})["email"])
}

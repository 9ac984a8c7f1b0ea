package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fstr_backend/internal/app"
	"fstr_backend/internal/config"
	"fstr_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Services *services.ServiceContainer
}

// NewTestServer поднимает настоящий роутер приложения поверх тестовой БД
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)

	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = "file::memory:"

	container := app.InitializeServices(cfg)
	server := httptest.NewServer(app.SetupRouter(cfg, db, container))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Services: container,
	}
}

// SendRequest отправляет запрос; body - структура/карта (кодируется в JSON) или сырая строка
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// PerevalPayload - валидное тело POST /submitData/ для тестов
func PerevalPayload(email, title string) map[string]interface{} {
	return map[string]interface{}{
		"beauty_title": "пер.",
		"title":        title,
		"other_titles": "Триев",
		"connect":      "",
		"add_time":     "2021-09-22 13:18:13",
		"user": map[string]interface{}{
			"email": email,
			"fam":   "Пупкин",
			"name":  "Василий",
			"otc":   "Иванович",
			"phone": "+7 555 55 55",
		},
		"coords": map[string]interface{}{
			"latitude":  "45.3842",
			"longitude": "7.1525",
			"height":    "1200",
		},
		"level": map[string]interface{}{
			"winter": "",
			"summer": "1А",
			"autumn": "1А",
			"spring": "",
		},
		"images": []map[string]interface{}{
			{"title": "Седловина", "image_url": "https://example.com/img/1.jpg"},
			{"title": "Подъём", "image_url": "https://example.com/img/2.jpg"},
		},
	}
}

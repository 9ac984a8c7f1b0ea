package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"fstr_backend/internal/models"
	"fstr_backend/internal/validator"
)

// Number - числовое поле, которое клиент может прислать числом или строкой ("45.3842").
// Декодирование никогда не падает: нечисловое значение сохраняется как текст
// и отклоняется правилами float-number / integer-number с ошибкой по полю.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(raw)
	return nil
}

// Float64 - значение уже провалидированного поля
func (n Number) Float64() float64 {
	f, _ := validator.ParseFloat(string(n))
	return f
}

func (n Number) Int() int {
	i, _ := validator.ParseInteger(string(n))
	return i
}

// Normalizer вызывается обработчиком после биндинга и до валидации
type Normalizer interface {
	Normalize()
}

// --- Requests ---

type UserRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Fam   string `json:"fam" validate:"max=100"`
	Name  string `json:"name" validate:"max=100"`
	Otc   string `json:"otc" validate:"max=100"`
	Phone string `json:"phone" validate:"max=20"`
}

type CoordsRequest struct {
	Latitude  Number `json:"latitude" validate:"required,float-number"`
	Longitude Number `json:"longitude" validate:"required,float-number"`
	Height    Number `json:"height" validate:"required,integer-number"`
}

type ImageRequest struct {
	Title    string `json:"title" validate:"required,max=100"`
	ImageURL string `json:"image_url" validate:"required,url,max=200"`
}

// LevelRequest - альтернативная запись категорий сложности одним объектом
type LevelRequest struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

// SubmitPerevalRequest - тело POST /submitData/.
// add_time, status и id не объявлены: их назначает сервер, присланные значения игнорируются.
type SubmitPerevalRequest struct {
	BeautyTitle string         `json:"beauty_title" validate:"max=100"`
	Title       string         `json:"title" validate:"required,max=100"`
	OtherTitles string         `json:"other_titles" validate:"max=255"`
	Connect     string         `json:"connect"`
	User        UserRequest    `json:"user"`
	Coords      CoordsRequest  `json:"coords"`
	LevelWinter *string        `json:"level_winter" validate:"omitnil,max=3"`
	LevelSummer *string        `json:"level_summer" validate:"omitnil,max=3"`
	LevelAutumn *string        `json:"level_autumn" validate:"omitnil,max=3"`
	LevelSpring *string        `json:"level_spring" validate:"omitnil,max=3"`
	Level       *LevelRequest  `json:"level" validate:"-"`
	Images      []ImageRequest `json:"images" validate:"dive"`
}

func (r *SubmitPerevalRequest) Normalize() {
	r.User.Email = NormalizeEmail(r.User.Email)
	applyLevelAlias(r.Level, &r.LevelWinter, &r.LevelSummer, &r.LevelAutumn, &r.LevelSpring)
}

type PatchCoordsRequest struct {
	Latitude  *Number `json:"latitude" validate:"omitnil,float-number"`
	Longitude *Number `json:"longitude" validate:"omitnil,float-number"`
	Height    *Number `json:"height" validate:"omitnil,integer-number"`
}

// UpdatePerevalRequest - тело PATCH. nil означает "поле не прислано";
// JSON null трактуется так же. Images != nil (в том числе []) заменяет весь список фото.
// User принимается в любом виде (объект, строка, мусор) без проверки и никогда не применяется.
type UpdatePerevalRequest struct {
	BeautyTitle *string             `json:"beauty_title" validate:"omitnil,min=1,max=100"`
	Title       *string             `json:"title" validate:"omitnil,min=1,max=100"`
	OtherTitles *string             `json:"other_titles" validate:"omitnil,max=255"`
	Connect     *string             `json:"connect"`
	LevelWinter *string             `json:"level_winter" validate:"omitnil,max=3"`
	LevelSummer *string             `json:"level_summer" validate:"omitnil,max=3"`
	LevelAutumn *string             `json:"level_autumn" validate:"omitnil,max=3"`
	LevelSpring *string             `json:"level_spring" validate:"omitnil,max=3"`
	Level       *LevelRequest       `json:"level" validate:"-"`
	Coords      *PatchCoordsRequest `json:"coords"`
	Images      *[]ImageRequest     `json:"images" validate:"omitnil,dive"`
	User        json.RawMessage     `json:"user" validate:"-" swaggertype:"object"`
}

func (r *UpdatePerevalRequest) Normalize() {
	applyLevelAlias(r.Level, &r.LevelWinter, &r.LevelSummer, &r.LevelAutumn, &r.LevelSpring)
}

// applyLevelAlias раскладывает объект level по плоским полям; явно присланное плоское поле важнее
func applyLevelAlias(level *LevelRequest, winter, summer, autumn, spring **string) {
	if level == nil {
		return
	}
	fill := func(dst **string, src *string) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
		}
	}
	fill(winter, level.Winter)
	fill(summer, level.Summer)
	fill(autumn, level.Autumn)
	fill(spring, level.Spring)
}

// NormalizeEmail - форма email, по которой идентифицируется автор
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetStatusRequest - аргументы внешней модерации (команда moderate)
type SetStatusRequest struct {
	ID     uint   `json:"id" validate:"required,gt=0"`
	Status string `json:"status" validate:"required,pereval-status"`
}

func (r *SetStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

// --- Responses ---

type UserResponse struct {
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

type CoordsResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

type ImageResponse struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type LevelResponse struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

// PerevalResponse - представление записи для GET
type PerevalResponse struct {
	ID          uint            `json:"id"`
	BeautyTitle string          `json:"beauty_title"`
	Title       string          `json:"title"`
	OtherTitles string          `json:"other_titles"`
	Connect     string          `json:"connect"`
	AddTime     time.Time       `json:"add_time"`
	Status      string          `json:"status"`
	User        UserResponse    `json:"user"`
	Coords      CoordsResponse  `json:"coords"`
	LevelWinter string          `json:"level_winter"`
	LevelSummer string          `json:"level_summer"`
	LevelAutumn string          `json:"level_autumn"`
	LevelSpring string          `json:"level_spring"`
	Level       LevelResponse   `json:"level"`
	Images      []ImageResponse `json:"images"`
}

// NewPerevalResponse ожидает перевал с загруженными User, Coords и Images
func NewPerevalResponse(p *models.Pereval) PerevalResponse {
	resp := PerevalResponse{
		ID:          p.ID,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		AddTime:     p.AddTime,
		Status:      string(p.Status),
		LevelWinter: p.LevelWinter,
		LevelSummer: p.LevelSummer,
		LevelAutumn: p.LevelAutumn,
		LevelSpring: p.LevelSpring,
		Level: LevelResponse{
			Winter: p.LevelWinter,
			Summer: p.LevelSummer,
			Autumn: p.LevelAutumn,
			Spring: p.LevelSpring,
		},
		Images: make([]ImageResponse, 0, len(p.Images)),
	}

	if p.User != nil {
		resp.User = UserResponse{
			Email: p.User.Email,
			Fam:   p.User.Fam,
			Name:  p.User.Name,
			Otc:   p.User.Otc,
			Phone: p.User.Phone,
		}
	}
	if p.Coords != nil {
		resp.Coords = CoordsResponse{
			Latitude:  p.Coords.Latitude,
			Longitude: p.Coords.Longitude,
			Height:    p.Coords.Height,
		}
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, ImageResponse{Title: img.Title, ImageURL: img.ImageURL})
	}
	return resp
}

func NewPerevalResponses(perevals []models.Pereval) []PerevalResponse {
	result := make([]PerevalResponse, 0, len(perevals))
	for i := range perevals {
		result = append(result, NewPerevalResponse(&perevals[i]))
	}
	return result
}

// --- Envelopes ---

// SubmitResponse - успешный ответ POST (поле status повторяет исходный API)
type SubmitResponse struct {
	Status  int     `json:"status"`
	Message *string `json:"message"`
	ID      *uint   `json:"id"`
}

// UpdateResponse - ответ PATCH: state=1 при успехе
type UpdateResponse struct {
	State   int     `json:"state"`
	Message *string `json:"message"`
}

// EmailFilterQuery - параметр фильтра GET /submitData/?user__email=
type EmailFilterQuery struct {
	Email string `form:"user__email" json:"user__email" validate:"required,email"`
}

func (q *EmailFilterQuery) Normalize() {
	q.Email = NormalizeEmail(q.Email)
}

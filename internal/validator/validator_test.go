package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testImage struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url,max=200"`
}

type testCoords struct {
	Latitude string `json:"latitude" validate:"required,float-number"`
	Height   string `json:"height" validate:"required,integer-number"`
}

type testRequest struct {
	Title  string      `json:"title" validate:"required,max=5"`
	Email  string      `json:"email" validate:"required,email"`
	Status string      `json:"status" validate:"omitempty,pereval-status"`
	Coords testCoords  `json:"coords"`
	Images []testImage `json:"images" validate:"dive"`
}

func TestValidate_AggregatesAllErrorsByJSONPath(t *testing.T) {
	v := New()

	err := v.Validate(&testRequest{
		Title:  "слишком длинно",
		Email:  "nope",
		Status: "approved",
		Coords: testCoords{Latitude: "north", Height: "12.5"},
		Images: []testImage{
			{Title: "ok", ImageURL: "https://example.com/a.jpg"},
			{Title: "", ImageURL: "not a url"},
		},
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))

	assert.Equal(t, []string{"Ensure this field has no more than 5 characters."}, vErr.Errors["title"])
	assert.Equal(t, []string{"Enter a valid email address."}, vErr.Errors["email"])
	assert.Equal(t, []string{"\"approved\" is not a valid choice."}, vErr.Errors["status"])
	assert.Equal(t, []string{"A valid number is required."}, vErr.Errors["coords.latitude"])
	assert.Equal(t, []string{"A valid integer is required."}, vErr.Errors["coords.height"])
	assert.Equal(t, []string{"This field is required."}, vErr.Errors["images[1].title"])
	assert.Equal(t, []string{"Enter a valid URL."}, vErr.Errors["images[1].image_url"])
	assert.NotContains(t, vErr.Errors, "images[0].image_url")
	assert.Len(t, vErr.Errors, 7)
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&testRequest{
		Title:  "Пхия",
		Email:  "a@b.ru",
		Coords: testCoords{Latitude: "45.3842", Height: "1200.0"},
	})
	assert.NoError(t, err)
}

func TestVar(t *testing.T) {
	v := New()

	err := v.Var("user__email", "", "required,email")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"This field is required."}, vErr.Errors["user__email"])

	assert.NoError(t, v.Var("user__email", "a@b.ru", "required,email"))
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	e := &ValidationError{}
	assert.False(t, e.HasErrors())

	e.Add("z", "last")
	e.Add("a", "first")
	e.Add("a", "second")

	assert.True(t, e.HasErrors())
	assert.Equal(t, "Validation failed: field 'a': first, second; field 'z': last", e.Error())
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"45.3842", 45.3842, true},
		{" -7.1 ", -7.1, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"north", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFloat(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.raw)
		}
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1200", 1200, true},
		{"1200.0", 1200, true},
		{"-50", -50, true},
		{"12.5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"99999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInteger(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.raw)
		}
	}
}

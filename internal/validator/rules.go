package validator

import (
	"log"
	"math"
	"strconv"
	"strings"

	"fstr_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	tagFloatNumber   = "float-number"
	tagIntegerNumber = "integer-number"
	tagPerevalStatus = "pereval-status"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'float-number': строка или число из JSON, конечное число с плавающей точкой
	mustRegister(tagFloatNumber, validateFloatNumber)

	// 'integer-number': целое значение ("1200", 1200, 1200.0)
	mustRegister(tagIntegerNumber, validateIntegerNumber)

	// 'pereval-status': один из статусов модерации
	mustRegister(tagPerevalStatus, validatePerevalStatus)
}

// ParseFloat разбирает координату. Пустая строка, NaN и Inf недопустимы.
func ParseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInteger разбирает высоту: допускаются целые значения в записи с точкой ("1200.0")
func ParseInteger(raw string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n, n >= math.MinInt32 && n <= math.MaxInt32
	}
	f, ok := ParseFloat(raw)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func validateFloatNumber(fl validator.FieldLevel) bool {
	_, ok := ParseFloat(fl.Field().String())
	return ok
}

func validateIntegerNumber(fl validator.FieldLevel) bool {
	_, ok := ParseInteger(fl.Field().String())
	return ok
}

func validatePerevalStatus(fl validator.FieldLevel) bool {
	return models.PerevalStatus(fl.Field().String()).Valid()
}

package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError содержит все ошибки сразу: "путь поля" -> список сообщений.
// Путь строится по json-тегам: title, user.email, images[1].image_url.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errMsgs := make([]string, 0, len(fields))
	for _, field := range fields {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, strings.Join(e.Errors[field], ", ")))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Add добавляет сообщение к полю; используется и для ошибок вне struct-тегов (query-параметры)
func (e *ValidationError) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], message)
}

// HasErrors - есть ли хотя бы одна ошибка
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validator - обертка над go-playground/validator
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В путях ошибок используем имена из json-тегов DTO, а не имена полей Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate проверяет структуру целиком и агрегирует все ошибки.
// Для невалидных данных возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := &ValidationError{}
	for _, fe := range validationErrors {
		result.Add(fieldPath(fe), messageFor(fe))
	}
	return result
}

// Var проверяет одиночное значение (например, query-параметр) и кладет ошибки под именем field
func (v *Validator) Var(field string, value interface{}, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := &ValidationError{}
	for _, fe := range validationErrors {
		result.Add(field, messageFor(fe))
	}
	return result
}

// fieldPath отрезает имя корневой структуры: "SubmitPerevalRequest.coords.height" -> "coords.height"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Param() == "1" {
			return "This field may not be blank."
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case tagFloatNumber:
		return "A valid number is required."
	case tagIntegerNumber:
		return "A valid integer is required."
	case tagPerevalStatus:
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

package models

// PerevalStatus - стадия модерации записи о перевале
type PerevalStatus string

const (
	PerevalStatusNew      PerevalStatus = "new"
	PerevalStatusPending  PerevalStatus = "pending"
	PerevalStatusAccepted PerevalStatus = "accepted"
	PerevalStatusRejected PerevalStatus = "rejected"
)

// PerevalStatuses - все допустимые статусы в порядке жизненного цикла
var PerevalStatuses = []PerevalStatus{
	PerevalStatusNew,
	PerevalStatusPending,
	PerevalStatusAccepted,
	PerevalStatusRejected,
}

func (s PerevalStatus) Valid() bool {
	switch s {
	case PerevalStatusNew, PerevalStatusPending, PerevalStatusAccepted, PerevalStatusRejected:
		return true
	default:
		return false
	}
}

// Editable - правка пользователем разрешена только до начала модерации
func (s PerevalStatus) Editable() bool {
	return s == PerevalStatusNew
}

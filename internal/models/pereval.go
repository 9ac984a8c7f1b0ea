package models

import "time"

// Submitter - автор записи. Идентичность - email (уникальный индекс).
type Submitter struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"size:254;not null;uniqueIndex:idx_pereval_users_email"`
	Fam       string    `gorm:"size:100"`
	Name      string    `gorm:"size:100"`
	Otc       string    `gorm:"size:100"`
	Phone     string    `gorm:"size:20"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Submitter) TableName() string {
	return "pereval_users"
}

// Coords принадлежит ровно одному перевалу (coords_id в pereval_added уникален)
type Coords struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Height    int     `gorm:"not null"`
}

func (Coords) TableName() string {
	return "pereval_coords"
}

type Pereval struct {
	ID          uint          `gorm:"primaryKey;autoIncrement"`
	BeautyTitle string        `gorm:"size:100"`
	Title       string        `gorm:"size:100;not null"`
	OtherTitles string        `gorm:"size:255"`
	Connect     string        `gorm:"type:text"`
	AddTime     time.Time     `gorm:"not null"`
	LevelWinter string        `gorm:"size:3"`
	LevelSummer string        `gorm:"size:3"`
	LevelAutumn string        `gorm:"size:3"`
	LevelSpring string        `gorm:"size:3"`
	Status      PerevalStatus `gorm:"size:10;not null;default:new;index"`

	UserID   uint `gorm:"not null;index"`
	CoordsID uint `gorm:"not null;uniqueIndex"`

	User   *Submitter     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Coords *Coords        `gorm:"foreignKey:CoordsID;constraint:OnDelete:CASCADE"`
	Images []PerevalImage `gorm:"foreignKey:PerevalID;constraint:OnDelete:CASCADE"`
}

func (Pereval) TableName() string {
	return "pereval_added"
}

// PerevalImage - фото хранится только как URL; порядок - по id (порядок вставки)
type PerevalImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PerevalID uint   `gorm:"not null;index"`
	Title     string `gorm:"size:100;not null"`
	ImageURL  string `gorm:"column:image_url;size:200;not null"`
}

func (PerevalImage) TableName() string {
	return "pereval_images"
}

// UpdatableValues - колонки pereval_added, которые может менять PATCH.
// Статус, время подачи и ссылки на автора/координаты сюда не входят.
// Карта (а не структура) нужна, чтобы пустые строки тоже записывались.
func (p *Pereval) UpdatableValues() map[string]interface{} {
	return map[string]interface{}{
		"beauty_title": p.BeautyTitle,
		"title":        p.Title,
		"other_titles": p.OtherTitles,
		"connect":      p.Connect,
		"level_winter": p.LevelWinter,
		"level_summer": p.LevelSummer,
		"level_autumn": p.LevelAutumn,
		"level_spring": p.LevelSpring,
	}
}

package models

import "time"

// Master represents a registered craftswoman selling on the marketplace.
type Master struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	Telegram  string    `db:"telegram" json:"telegram"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// MasterProfile is the public contact subset of a master, joined onto
// product detail responses.
type MasterProfile struct {
	Name     string `db:"name" json:"name"`
	City     string `db:"city" json:"city"`
	Telegram string `db:"telegram" json:"telegram"`
	Phone    string `db:"phone" json:"phone"`
}

// Cities lists the Kazakhstani cities a master can register in.
var Cities = []string{
	"Астана", "Алматы", "Шымкент", "Караганда", "Актобе", "Тараз",
	"Павлодар", "Усть-Каменогорск", "Семей", "Атырау", "Костанай",
	"Кызылорда", "Уральск", "Петропавловск", "Актау", "Темиртау", "Туркестан",
}

// IsKnownCity reports whether city is part of the registration enum.
func IsKnownCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

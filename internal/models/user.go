package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"unique;not null"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   *string   `json:"company"`
	Address1  *string   `json:"address_1"`
	Address2  *string   `json:"address_2"`
	City      *string   `json:"city"`
	Postcode  *string   `json:"postcode"`
	Country   *string   `json:"country"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role" gorm:"default:customer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

package store

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name  string
	Email string `gorm:"uniqueIndex;not null"`

	// Password holds the bcrypt hash of the user's password. Nil for
	// accounts created through an identity provider.
	Password *string

	Tasks []*Task `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;"`
}

func NewUser(name, email string, password *string) *User {
	return &User{
		Name:     name,
		Email:    email,
		Password: password,
	}
}

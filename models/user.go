package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"gallery/db"
	"gallery/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey;type:varchar(40)" json:"id"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// UserSignIn returns the user with the given email, creating it on first
// sign-in.
func UserSignIn(email string) (user User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err = mail.ParseAddress(email); err != nil {
		return User{}, errors.New("invalid email address")
	}
	err = db.Instance.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, err
	}
	user = User{
		ID:        utils.NewID(),
		Email:     email,
		CreatedAt: time.Now().Unix(),
	}
	if err = db.Instance.Create(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

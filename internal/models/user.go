package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// User is the single device-local profile.
type User struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"password"` // never plaintext once stored
	RegisteredDate string `json:"registeredDate"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("invalid email %q: %w", u.Email, err)
	}
	return nil
}

// DayValue is one day of a counter series (water ml, steps).
type DayValue struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// DayScore is one day of a derived real-valued series (mood average, completion %).
type DayScore struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

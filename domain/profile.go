package domain

import (
	"strings"
	"time"
)

type UserProfile struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ValidateProfile(p UserProfile) Violations {
	var vs Violations
	if !IsIdentifier(p.ID) {
		vs.Add("id", "must be a well-formed identifier")
	}
	if p.Email == "" {
		vs.Add("email", "is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		vs.Add("display_name", "must not be empty")
	}
	return vs
}

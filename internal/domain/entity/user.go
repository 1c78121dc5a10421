// Package entity contains the core domain objects of the application.
package entity

// User is the profile of the logged-in user as reported by the backend.
type User struct {
	ID       int64
	Username string
	Sido     string
	Gugun    string
	// Type is the taste profile label, unlocked after enough recommendations.
	Type    *string
	Monthly []MonthlyScore
}

// MonthlyScore is one month of local-contribution score, month formatted "2006-01".
type MonthlyScore struct {
	Month string
	Score int
}

const (
	// NicknameMaxLen bounds the nickname length after trimming.
	NicknameMaxLen = 15

	// IdentifierMinLen and IdentifierMaxLen bound the login identifier.
	IdentifierMinLen = 6
	IdentifierMaxLen = 12

	// PasswordMinLen and PasswordMaxLen bound the password.
	PasswordMinLen = 6
	PasswordMaxLen = 12
)

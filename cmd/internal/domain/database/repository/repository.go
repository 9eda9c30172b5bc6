package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateName is returned when another active company already holds the name.
	ErrDuplicateName = errors.New("an active company with this name already exists")

	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s literally.
// It must be paired with a "name_search LIKE ? ESCAPE '\'" condition, the
// column holding the name lowercased the same way.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// isDuplicateKey reports a unique constraint violation, whether or not the
// dialect translated it into gorm.ErrDuplicatedKey.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

package helper

import "strings"

// IsUniqueViolation mendeteksi pelanggaran unique constraint lintas driver
// (Postgres 23505 & sqlite) tanpa import driver spesifik.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation_Matches23505(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected 23505 to be reported as a unique violation")
	}
}

func TestIsUniqueViolation_MatchesWrapped(t *testing.T) {
	err := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected wrapped 23505 to be reported as a unique violation")
	}
}

func TestIsUniqueViolation_IgnoresOtherErrors(t *testing.T) {
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("plain errors must not be classified as unique violations")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violations must not be classified as unique violations")
	}
	if IsUniqueViolation(nil) {
		t.Fatalf("nil must not be classified as a unique violation")
	}
}

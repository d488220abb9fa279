package schema

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRow_Domain_VerifiedUser(t *testing.T) {
	row := &UserRow{
		ID:            "u-1",
		Name:          "Ada",
		Email:         "ada@example.com",
		EmailVerified: sql.NullString{String: "2024-03-07 15:04:05+00", Valid: true},
	}

	u, err := row.Domain()
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	require.NotNil(t, u.EmailVerified)
	assert.True(t, u.EmailVerified.Equal(time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)))
}

func TestUserRow_Domain_UnverifiedUser(t *testing.T) {
	row := &UserRow{ID: "u-1", Name: "Ada", Email: "ada@example.com"}

	u, err := row.Domain()
	require.NoError(t, err)
	assert.Nil(t, u.EmailVerified, "NULL email_verified must map to nil, not zero time")
}

func TestUserRow_Domain_DriftIsTagged(t *testing.T) {
	tests := []struct {
		name string
		row  UserRow
	}{
		{"missing id", UserRow{Name: "Ada", Email: "ada@example.com"}},
		{"missing email", UserRow{ID: "u-1", Name: "Ada"}},
		{"bad timestamp", UserRow{
			ID: "u-1", Name: "Ada", Email: "ada@example.com",
			EmailVerified: sql.NullString{String: "not-a-time", Valid: true},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.row.Domain()
			assert.True(t, errors.Is(err, common.ErrSchemaDrift), "want ErrSchemaDrift, got %v", err)
			assert.True(t, errors.Is(err, common.ErrValidation), "drift must also match ErrValidation")
		})
	}
}

func TestAccountRow_Domain_NullableColumns(t *testing.T) {
	row := &AccountRow{
		ID:                "a-1",
		UserID:            "u-1",
		Type:              "oauth",
		Provider:          "github",
		ProviderAccountID: "gh-42",
		AccessToken:       sql.NullString{String: "at", Valid: true},
		ExpiresAt:         sql.NullInt64{Int64: 1700000000, Valid: true},
	}

	a, err := row.Domain()
	require.NoError(t, err)
	require.NotNil(t, a.AccessToken)
	assert.Equal(t, "at", *a.AccessToken)
	require.NotNil(t, a.ExpiresAt)
	assert.Equal(t, int64(1700000000), *a.ExpiresAt)
	assert.Nil(t, a.RefreshToken)
	assert.Nil(t, a.Scope)
	assert.Nil(t, a.SessionState)
}

func TestAccountRow_Domain_DriftIsTagged(t *testing.T) {
	row := &AccountRow{ID: "a-1", Provider: "github", ProviderAccountID: "gh-42"}
	_, err := row.Domain()
	assert.True(t, errors.Is(err, common.ErrSchemaDrift), "want ErrSchemaDrift, got %v", err)
}

func TestSessionRow_Domain(t *testing.T) {
	row := &SessionRow{
		ID:           "s-1",
		UserID:       "u-1",
		SessionToken: "tok1",
		Expires:      "2024-03-08 00:00:00+00",
	}

	s, err := row.Domain()
	require.NoError(t, err)
	assert.Equal(t, "tok1", s.SessionToken)
	assert.True(t, s.Expires.Equal(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)))

	bad := &SessionRow{ID: "s-1", UserID: "u-1", SessionToken: "tok1", Expires: "soon"}
	_, err = bad.Domain()
	assert.True(t, errors.Is(err, common.ErrSchemaDrift))
}

func TestVerificationTokenRow_Domain(t *testing.T) {
	row := &VerificationTokenRow{
		Identifier: "ada@example.com",
		Token:      "secret",
		Expires:    "2024-03-08 00:00:00+00",
	}

	v, err := row.Domain()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", v.Identifier)
	assert.Equal(t, "secret", v.Token)

	bad := &VerificationTokenRow{Token: "secret", Expires: "2024-03-08 00:00:00+00"}
	_, err = bad.Domain()
	assert.True(t, errors.Is(err, common.ErrSchemaDrift))
}

func TestNullBinders(t *testing.T) {
	assert.False(t, NullString(nil).Valid)
	assert.False(t, NullInt64(nil).Valid)

	s := "scope"
	n := int64(7)
	assert.Equal(t, sql.NullString{String: "scope", Valid: true}, NullString(&s))
	assert.Equal(t, sql.NullInt64{Int64: 7, Valid: true}, NullInt64(&n))
}

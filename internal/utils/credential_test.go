package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhcampus/attendance-platform/internal/model"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	token, err := IssueCredential(testSecret, "inst-7", model.RoleServiceAgent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyCredential(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "inst-7", claims.InstitutionID)
	assert.Equal(t, model.RoleServiceAgent, claims.Role)
}

func TestElevateCredentialMintsAdmin(t *testing.T) {
	token, err := ElevateCredential(testSecret, "inst-7")
	require.NoError(t, err)

	claims, err := VerifyCredential(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "inst-7", claims.InstitutionID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := IssueCredential(testSecret, "inst-7", model.RoleAdmin)
	require.NoError(t, err)

	_, err = VerifyCredential("some-other-secret", token)
	assert.ErrorIs(t, err, ErrBadCredential)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := VerifyCredential(testSecret, tok)
		assert.ErrorIs(t, err, ErrBadCredential, "token %q", tok)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := IssueCredential(testSecret, "inst-7", model.RoleServiceAgent)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	b := []byte(token)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	_, err = VerifyCredential(testSecret, string(b))
	assert.ErrorIs(t, err, ErrBadCredential)
}

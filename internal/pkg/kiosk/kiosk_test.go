package kiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "JBSWY3DPEHPK3PXP"

func TestNewVerifier_EmptySecretDisables(t *testing.T) {
	v, err := NewVerifier("  ")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestVerifier_CodeAndCheck(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	at := time.Date(2025, 5, 5, 8, 0, 10, 0, time.UTC)
	code, expiresAt, err := v.Code(at)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, time.Date(2025, 5, 5, 8, 0, 30, 0, time.UTC), expiresAt)

	assert.True(t, v.Check(code, at))
	assert.True(t, v.Check(code, at.Add(Period)))
	assert.False(t, v.Check(code, at.Add(5*Period)))
	assert.False(t, v.Check("", at))
}

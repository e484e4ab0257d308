package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssignReminders/config"
)

func TestLinkTokenRoundTrip(t *testing.T) {
	config.Cfg.LinkTokenSecret = "test-secret"
	config.Cfg.LinkTokenExpireMinutes = 10

	signed, err := MintLinkToken(42)
	require.NoError(t, err)

	uid, err := VerifyLinkToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestVerifyLinkTokenRejectsGarbage(t *testing.T) {
	config.Cfg.LinkTokenSecret = "test-secret"

	_, err := VerifyLinkToken("not-a-token")
	assert.Error(t, err)

	_, err = VerifyLinkToken("")
	assert.Error(t, err)
}

func TestVerifyLinkTokenRejectsWrongSecret(t *testing.T) {
	config.Cfg.LinkTokenSecret = "test-secret"
	config.Cfg.LinkTokenExpireMinutes = 10

	signed, err := MintLinkToken(42)
	require.NoError(t, err)

	config.Cfg.LinkTokenSecret = "another-secret"
	_, err = VerifyLinkToken(signed)
	assert.Error(t, err)
}

func TestVerifyLinkTokenRejectsExpired(t *testing.T) {
	config.Cfg.LinkTokenSecret = "test-secret"
	config.Cfg.LinkTokenExpireMinutes = -1

	signed, err := MintLinkToken(42)
	require.NoError(t, err)

	_, err = VerifyLinkToken(signed)
	assert.Error(t, err)
}

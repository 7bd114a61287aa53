package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	encoded, err := Hash("s3cret")
	require.NoError(t, err)
	require.Contains(t, encoded, "$argon2id$")

	require.NoError(t, Verify("s3cret", encoded))
	require.ErrorIs(t, Verify("S3cret", encoded), ErrMismatch)
}

func TestHashUsesFreshSalt(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=19$m=x$aa$bb"} {
		require.ErrorIs(t, Verify("pw", encoded), ErrMalformed, encoded)
	}
}

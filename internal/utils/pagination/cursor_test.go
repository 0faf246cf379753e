package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := Encode(Cursor{ProfileID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), decoded.ProfileID)
}

func TestEmptyTokenIsFirstPage(t *testing.T) {
	decoded, err := Decode("")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), decoded.ProfileID)
}

func TestInvalidTokenRejected(t *testing.T) {
	_, err := Decode("%%%not-base64%%%")
	assert.Error(t, err)

	// valid base64, invalid payload
	_, err = Decode("bm90LWpzb24=")
	assert.Error(t, err)
}

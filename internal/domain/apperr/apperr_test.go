package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := Authorization("email is already registered")
	k, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindAuthorization, k)

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok)
	_, ok = KindOf(nil)
	require.False(t, ok)
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading profile: %w", NotFound("user not found"))
	require.True(t, Is(err, KindNotFound))
	require.False(t, Is(err, KindBadRequest))
}

func TestNewf(t *testing.T) {
	err := Newf(KindBadRequest, "page %d out of range", 7)
	require.Equal(t, "page 7 out of range", err.Error())
	require.True(t, Is(err, KindBadRequest))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "authentication", KindAuthentication.String())
	require.Equal(t, "authorization", KindAuthorization.String())
	require.Equal(t, "bad_request", KindBadRequest.String())
	require.Equal(t, "not_found", KindNotFound.String())
	require.Equal(t, "unknown", Kind(99).String())
}

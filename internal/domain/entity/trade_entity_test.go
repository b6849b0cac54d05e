package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTradeMembership(t *testing.T) {
	tr := &Trade{ID: "t1", MemberOne: "a", MemberTwo: "b", MemberOneRated: true}

	require.True(t, tr.IsMember("a"))
	require.True(t, tr.IsMember("b"))
	require.False(t, tr.IsMember("c"))

	require.True(t, tr.HasRated("a"))
	require.False(t, tr.HasRated("b"))
	require.False(t, tr.HasRated("c"), "non-members never count as having rated")
}

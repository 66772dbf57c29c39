package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Auction ")
	require.NoError(t, err)
	assert.Equal(t, KindAuction, k)

	_, err = ParseKind("video")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestObjectPath(t *testing.T) {
	p, err := ObjectPath(KindChat, "u1", "image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "chats/u1/"))
	assert.True(t, strings.HasSuffix(p, ".png"))

	other, err := ObjectPath(KindChat, "u1", "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, p, other)

	_, err = ObjectPath(KindAvatar, "u1", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("demo.appspot.com", "auctions/u1/a b.jpg", "tok")
	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/demo.appspot.com/o/auctions%2Fu1%2Fa%20b.jpg?alt=media&token=tok", got)
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"netflix", "tving", "watcha"}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["netflix","tving","watcha"]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListValueNil(t *testing.T) {
	var list StringList

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestStringListScanEmptyColumn(t *testing.T) {
	for _, src := range []any{nil, "", []byte{}} {
		var list StringList
		require.NoError(t, list.Scan(src))
		assert.Equal(t, StringList{}, list)
	}
}

func TestStringListScanBytes(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["drama","thriller"]`)))
	assert.Equal(t, StringList{"drama", "thriller"}, list)
}

func TestRegisterRequestNormalizeAliases(t *testing.T) {
	req := RegisterRequest{
		ID:                  "alice",
		Password:            "secret",
		SubscribedOttSnake:  StringList{"netflix"},
		FavoriteGenresSnake: StringList{"drama"},
	}
	req.Normalize()

	assert.Equal(t, StringList{"netflix"}, req.SubscribedOtt)
	assert.Equal(t, StringList{"drama"}, req.FavoriteGenres)
}

func TestRegisterRequestNormalizeCamelCaseWins(t *testing.T) {
	req := RegisterRequest{
		SubscribedOtt:      StringList{"tving"},
		SubscribedOttSnake: StringList{"netflix"},
	}
	req.Normalize()

	assert.Equal(t, StringList{"tving"}, req.SubscribedOtt)
}

func TestRegisterRequestNormalizeDefaultsEmpty(t *testing.T) {
	req := RegisterRequest{ID: "alice", Password: "secret"}
	req.Normalize()

	assert.Equal(t, StringList{}, req.SubscribedOtt)
	assert.Equal(t, StringList{}, req.FavoriteGenres)
}

func TestProfileNeverSerializesPassword(t *testing.T) {
	user := User{ID: "alice", Password: "hash", Name: "Alice"}

	data, err := json.Marshal(user.Profile())
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.JSONEq(t, `{"id":"alice","name":"Alice","subscribedOtt":[],"favoriteGenres":[]}`, string(data))
}

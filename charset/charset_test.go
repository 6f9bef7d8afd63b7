package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"Hi", []byte("Hi")},
		{"", []byte{}},
		{"café", []byte{'c', 'a', 'f', 0xE9}},
		{"cafe\u0301", []byte{'c', 'a', 'f', 0xE9}},
		{"ÿ", []byte{0xFF}},
	}

	for _, tc := range tests {
		got, err := Encode(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestEncodeRejectsWideRunes(t *testing.T) {
	for _, s := range []string{"Łódź", "日本", "emoji 🦕"} {
		_, err := Encode(s)
		assert.ErrorIs(t, err, ErrUnrepresentable, s)
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "café", Decode([]byte{'c', 'a', 'f', 0xE9}))
	assert.Equal(t, "\x00ÿ", Decode([]byte{0x00, 0xFF}))
}

package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelfieName(t *testing.T) {
	now := time.UnixMilli(1704445200000)

	tests := []struct {
		original string
		want     string
	}{
		{"me.jpg", "selfies/1704445200000-me.jpg"},
		{"photos/me.jpg", "selfies/1704445200000-me.jpg"},
		{"../../etc/passwd", "selfies/1704445200000-passwd"},
		{`C:\Users\alice\me.png`, "selfies/1704445200000-me.png"},
		{"a?b.jpg", "selfies/1704445200000-a_b.jpg"},
		{"my photo #1 (100%).jpg", "selfies/1704445200000-my_photo__1__100__.jpg"},
		{"sélfie.jpg", "selfies/1704445200000-s_lfie.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelfieName(now, tt.original), tt.original)
	}
}

func TestSelfieName_Synthetic(t *testing.T) {
	now := time.UnixMilli(1704445200000)

	a := SelfieName(now, "")
	b := SelfieName(now, "")

	assert.True(t, strings.HasPrefix(a, "selfies/1704445200000-"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.NotEqual(t, a, b)

	for _, original := range []string{".", "..", "/", "???", "._."} {
		name := SelfieName(now, original)
		assert.Regexp(t, `^selfies/1704445200000-[0-9a-f-]{36}\.jpg$`, name, original)
	}
}

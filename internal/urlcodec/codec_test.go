package urlcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "clip.mp4", want: "clip.mp4"},
		{name: "space", input: "clip%20one.mp4", want: "clip one.mp4"},
		{name: "lower hex", input: "a%2fb", want: "a/b"},
		{name: "utf8", input: "caf%C3%A9.mp4", want: "café.mp4"},
		{name: "plus kept", input: "a+b.mp4", want: "a+b.mp4"},
		{name: "malformed escape", input: "100%.mp4", want: "100%.mp4"},
		{name: "truncated escape", input: "clip%2", want: "clip%2"},
		{name: "non hex escape", input: "%zz.mp4", want: "%zz.mp4"},
		{name: "invalid utf8", input: "%FF.mp4", want: "�.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unquote(tt.input))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "clip.mp4", want: "clip.mp4"},
		{name: "slash kept", input: "dir/clip_1-a~b.mp4", want: "dir/clip_1-a~b.mp4"},
		{name: "space", input: "clip one.mp4", want: "clip%20one.mp4"},
		{name: "reserved", input: "a&b=c?d#e:f.mp4", want: "a%26b%3Dc%3Fd%23e%3Af.mp4"},
		{name: "percent", input: "100%.mp4", want: "100%25.mp4"},
		{name: "utf8", input: "café.mp4", want: "caf%C3%A9.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.input))
		})
	}
}

func TestQuoteUnquoteIsStableOnEncodedInput(t *testing.T) {
	for _, href := range []string{"clip%20one.mp4", "clip one.mp4", "a%26b.mp4"} {
		once := Quote(Unquote(href))
		assert.Equal(t, once, Quote(Unquote(once)), href)
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no comments", `{"a": 1}`, `{"a": 1}`},
		{"line comment", "{\"a\": 1} // note\n", "{\"a\": 1} \n"},
		{"line comment at eof", `{"a": 1} // note`, `{"a": 1} `},
		{"block comment", `{/* x */"a": 1}`, `{"a": 1}`},
		{"multiline block keeps newlines", "{/* x\ny\n*/\"a\": 1}", "{\n\n\"a\": 1}"},
		{"unterminated block", `{"a": 1} /* open`, `{"a": 1} `},
		{"slashes in string", `{"url": "http://host/*x*/"}`, `{"url": "http://host/*x*/"}`},
		{"escaped quote in string", `{"q": "a\"//b"} // c`, `{"q": "a\"//b"} `},
		{"tabs outside strings", "{\t\"a\":\t\"x\ty\"}", "{ \"a\": \"x\ty\"}"},
		{"single slash kept", `{"a": 1/2}`, `{"a": 1/2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, string(StripComments([]byte(tt.in))))
		})
	}
}

package config

// StripComments removes // line comments and /* */ block comments from a
// JSON-like document. Comment markers inside string literals are kept.
// Newlines inside block comments are preserved so decoder errors keep their
// line numbers. Tabs outside strings become spaces, since the decoder does
// not accept tab indentation. An unterminated block comment runs to the end
// of the input.
func StripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))

	const (
		stateCode = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateCode
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case stateCode:
			switch {
			case c == '"':
				state = stateString
				out = append(out, c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			case c == '\t':
				out = append(out, ' ')
			default:
				out = append(out, c)
			}

		case stateString:
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"', c == '\n':
				state = stateCode
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
				out = append(out, c)
			}

		case stateBlockComment:
			switch {
			case c == '*' && i+1 < len(src) && src[i+1] == '/':
				state = stateCode
				i++
			case c == '\n':
				out = append(out, c)
			}
		}
	}

	return out
}

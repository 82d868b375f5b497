package file

import (
	"bufio"
	"bytes"
)

// SplitOnDelimiter returns a bufio.SplitFunc which splits input on an arbitrary
// delimiter, removing it. A trailing delimiter does not produce a final empty token.
// An empty delimiter treats the whole input as a single token.
func SplitOnDelimiter(delim []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if len(delim) > 0 {
			if i := bytes.Index(data, delim); i >= 0 {
				return i + len(delim), data[:i], nil
			}
		}
		if atEOF {
			return len(data), data, nil
		}
		// request more data
		return 0, nil, nil
	}
}

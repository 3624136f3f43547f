package launcher

import (
	"bufio"
	"errors"
	"io"
)

// maxLineBytes bounds the text kept for a single input line.
const maxLineBytes = 1 << 20

// lineReader splits input into lines ending at "\n", "\r\n" or a lone "\r".
// The last line needs no terminator.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line without its terminator. A line longer than
// maxLineBytes is consumed up to its terminator and returned empty with
// overlong set. At the end of input next returns io.EOF.
func (lr *lineReader) next() (text string, overlong bool, err error) {
	lr.buf = lr.buf[:0]
	started := false
	for {
		b, err := lr.r.ReadByte()
		if errors.Is(err, io.EOF) && started {
			return string(lr.buf), overlong, nil
		}
		if err != nil {
			return "", false, err
		}
		started = true

		switch b {
		case '\n':
			return string(lr.buf), overlong, nil
		case '\r':
			if next, err := lr.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = lr.r.Discard(1)
			}
			return string(lr.buf), overlong, nil
		}

		if overlong {
			continue
		}
		if len(lr.buf) == maxLineBytes {
			overlong = true
			lr.buf = lr.buf[:0]
			continue
		}
		lr.buf = append(lr.buf, b)
	}
}

package frontend

import (
	"bufio"
	"io"
)

// StripComments copies src to dst with every %-to-end-of-line comment
// removed, a trivial character-level transform kept as its own pass
// rather than folded into the scanner. It is idempotent: running it
// again over its own output is a no-op.
func StripComments(src io.Reader, dst io.Writer) error {
	r := bufio.NewReader(src)
	w := bufio.NewWriter(dst)

	inComment := false
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		if inComment {
			if c == '\n' {
				inComment = false
				if err := w.WriteByte(c); err != nil {
					return err
				}
			}
			continue
		}

		if c == '%' {
			inComment = true
			continue
		}

		if err := w.WriteByte(c); err != nil {
			return err
		}
	}

	return w.Flush()
}

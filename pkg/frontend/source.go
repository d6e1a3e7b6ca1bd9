package frontend

import (
	"io"
	"os"
)

// halfSize is the size of each half of the twin buffer, in bytes.
const halfSize = 4096

// bufSize is the combined size of both halves.
const bufSize = 2 * halfSize

// Buffer is a twin-buffer character source: two 4096-byte halves filled
// from a file on demand, read through a forward pointer and a lexeme-begin
// pointer that together bound the text of the token currently being
// recognised. Only one half is ever stale at a time — the invariant the
// scanner's retract logic depends on.
type Buffer struct {
	data [bufSize]byte

	forward     int
	lexemeBegin int

	loaded [2]bool
	eof    [2]bool
	eofPos [2]int

	file *os.File
	line int
}

// NewBuffer opens path and returns a Buffer positioned at its first byte.
func NewBuffer(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Buffer{file: f, line: 1}, nil
}

// Close releases the underlying file.
func (b *Buffer) Close() error {
	return b.file.Close()
}

// Line returns the line number of the character the forward pointer is
// currently positioned at.
func (b *Buffer) Line() int {
	return b.line
}

// MarkLexemeStart sets lexemeBegin to the forward pointer's current
// position. Scanner.Next calls this before reading each candidate token's
// first character, so it runs again after every skipped whitespace
// character.
func (b *Buffer) MarkLexemeStart() {
	b.lexemeBegin = b.forward
}

// Lexeme returns the bytes between lexemeBegin and forward (exclusive),
// unwrapping the circular buffer as needed.
func (b *Buffer) Lexeme() string {
	if b.forward >= b.lexemeBegin {
		return string(b.data[b.lexemeBegin:b.forward])
	}
	// Wrapped across the end of the buffer.
	out := make([]byte, 0, bufSize-b.lexemeBegin+b.forward)
	out = append(out, b.data[b.lexemeBegin:]...)
	out = append(out, b.data[:b.forward]...)
	return string(out)
}

// refillForward loads fresh data into half when the forward pointer
// crosses into it from the other half. It and refillWrap both do a plain
// load of the half; neither touches the line count, which Next and
// Retract maintain one character at a time.
func (b *Buffer) refillForward(half int) {
	b.load(half)
}

// refillWrap loads fresh data into half 0 after the forward pointer wraps
// from the end of half 1 back around to the start of the buffer.
func (b *Buffer) refillWrap(half int) {
	b.load(half)
}

func (b *Buffer) load(half int) {
	n, err := io.ReadFull(b.file, b.data[half*halfSize:(half+1)*halfSize])
	if err != nil {
		// A short read (including a clean io.EOF with n==0) places the
		// end-of-file sentinel immediately after the last byte read.
		b.eof[half] = true
		b.eofPos[half] = half*halfSize + n
	} else {
		b.eof[half] = false
	}
	b.loaded[half] = true
}

func (b *Buffer) ensureLoaded(half int) {
	if !b.loaded[half] {
		if half == 0 {
			b.refillWrap(half)
		} else {
			b.refillForward(half)
		}
	}
}

// Next returns the character at the forward pointer and advances it by
// one. The second return value is false at end of file, in which case the
// forward pointer does not move and the caller must not call Retract to
// compensate — there is nothing to retract.
func (b *Buffer) Next() (byte, bool) {
	half := b.forward / halfSize
	b.ensureLoaded(half)

	if b.eof[half] && b.forward == b.eofPos[half] {
		return 0, false
	}

	c := b.data[b.forward]
	b.forward++
	if b.forward == bufSize {
		b.forward = 0
	}
	if c == '\n' {
		b.line++
	}

	newHalf := b.forward / halfSize
	if newHalf != half {
		// Leaving `half` for good until the pointer next crosses into it;
		// mark it stale so the next entry reloads rather than replays it.
		b.loaded[half] = false
	}
	return c, true
}

// Retract steps the forward pointer back by n characters, decrementing the
// line count for every newline it steps back across. Retract must never be
// called to undo a Next call that returned ok == false.
func (b *Buffer) Retract(n int) {
	for i := 0; i < n; i++ {
		oldHalf := b.forward / halfSize
		b.forward--
		if b.forward < 0 {
			b.forward = bufSize - 1
		}
		newHalf := b.forward / halfSize
		if newHalf != oldHalf {
			// Stepping back into the half the forward pointer had left.
			// Its bytes are intact — Next only overwrites a half on entry —
			// so a later re-advance must not reload it.
			b.loaded[newHalf] = true
		}
		if b.data[b.forward] == '\n' {
			b.line--
		}
	}
}

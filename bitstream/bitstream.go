// Package bitstream converts messages to and from the self-delimited bit
// sequence hidden in a carrier image.
//
// A framed message is every byte expanded to eight bits, most significant
// bit first, followed by the terminator: 24 one bits and a single zero bit.
// There is no length field; the decoder relies on the terminator alone.
package bitstream

import (
	"bytes"
	"strings"
)

// Bits holds one bit per element, each either 0 or 1.
type Bits []byte

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

const (
	bitsPerByte    = 8
	terminatorOnes = 24
)

var terminator = func() Bits {
	t := make(Bits, terminatorOnes+1)
	for i := range terminatorOnes {
		t[i] = 1
	}
	return t
}()

// Terminator returns a copy of the end-of-message sentinel.
func Terminator() Bits {
	return bytes.Clone(terminator)
}

// TerminatorLen is the number of bits appended by Frame.
const TerminatorLen = terminatorOnes + 1

// Frame expands msg into bits and appends the terminator.
func Frame(msg []byte) Bits {
	bits := make(Bits, 0, len(msg)*bitsPerByte+len(terminator))
	for _, c := range msg {
		for shift := bitsPerByte - 1; shift >= 0; shift-- {
			bits = append(bits, (c>>shift)&1)
		}
	}
	return append(bits, terminator...)
}

// FrameString frames s one rune at a time. Runes above 0xFF lose their high
// bits; callers needing a lossless mapping should encode the text first.
func FrameString(s string) Bits {
	msg := make([]byte, 0, len(s))
	for _, r := range s {
		msg = append(msg, byte(r))
	}
	return Frame(msg)
}

// Unframe packs bits back into bytes. A trailing group shorter than eight
// bits is dropped.
func Unframe(bits Bits) []byte {
	msg := make([]byte, len(bits)/bitsPerByte)
	for i := range msg {
		var c byte
		for _, bit := range bits[i*bitsPerByte : (i+1)*bitsPerByte] {
			c = c<<1 | bit&1
		}
		msg[i] = c
	}
	return msg
}

// HasTerminator reports whether bits ends with the terminator.
func HasTerminator(bits Bits) bool {
	return bytes.HasSuffix(bits, terminator)
}

// TrimTerminator returns the bits preceding a trailing terminator. ok is
// false when bits does not end with one.
func TrimTerminator(bits Bits) (payload Bits, ok bool) {
	if !HasTerminator(bits) {
		return nil, false
	}
	return bits[:len(bits)-len(terminator)], true
}

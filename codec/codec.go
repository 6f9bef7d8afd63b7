// Package codec hides framed bits in the low nibble of the blue channel of
// a pixel sequence and scans them back out.
package codec

import (
	"errors"
	"fmt"

	"steganosaur/bitstream"
)

var (
	ErrInsufficientCapacity = errors.New("insufficient carrier capacity")
	ErrUnsupportedFormat    = errors.New("unsupported carrier color model")
	ErrTerminatorNotFound   = errors.New("no terminated message found")
)

// CapacityError reports how many eligible pixels a message needed.
type CapacityError struct {
	Need, Have int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: need %d eligible pixels, have %d", ErrInsufficientCapacity, e.Need, e.Have)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

// Pixel is an 8-bit RGB triple.
type Pixel struct {
	R, G, B uint8
}

// Sequence is a fixed-size, linearly indexed run of pixels.
type Sequence interface {
	Len() int
	Pixel(i int) Pixel
	SetPixel(i int, p Pixel)
}

// Pixels is an in-memory Sequence.
type Pixels []Pixel

func (s Pixels) Len() int                { return len(s) }
func (s Pixels) Pixel(i int) Pixel       { return s[i] }
func (s Pixels) SetPixel(i int, p Pixel) { s[i] = p }

const (
	nibbleMask    = 0x0F
	maxEligible   = 0x5
	maxReadNibble = 0x1
)

// Eligible reports whether p can carry a bit: the last digit of its hex
// triplet, the low nibble of blue, is 0 through 5.
func Eligible(p Pixel) bool {
	return p.B&nibbleMask <= maxEligible
}

// ReadBit returns the bit carried by p. Only nibbles 0 and 1 carry one.
func ReadBit(p Pixel) (byte, bool) {
	n := p.B & nibbleMask
	if n > maxReadNibble {
		return 0, false
	}
	return n, true
}

// Embed replaces the low nibble of blue with bit.
func Embed(p Pixel, bit byte) Pixel {
	p.B = p.B&^nibbleMask | bit&1
	return p
}

// Capacity counts the eligible pixels of seq.
func Capacity(seq Sequence) int {
	var n int
	for i := range seq.Len() {
		if Eligible(seq.Pixel(i)) {
			n++
		}
	}
	return n
}

// Write places bits into the eligible pixels of seq in index order and
// returns how many were written. Pixels past the last written one are left
// alone. When seq runs out first the stream is silently truncated; Inject
// checks capacity beforehand.
func Write(seq Sequence, bits bitstream.Bits) int {
	var written int
	for i := 0; i < seq.Len() && written < len(bits); i++ {
		p := seq.Pixel(i)
		if !Eligible(p) {
			continue
		}
		seq.SetPixel(i, Embed(p, bits[written]))
		written++
	}
	return written
}

// Read scans seq for a terminated bitstream. It stops at the first
// terminator and returns the bits before it; found is false when the
// pixels run out first.
func Read(seq Sequence) (bits bitstream.Bits, found bool) {
	var acc bitstream.Bits
	for i := range seq.Len() {
		bit, ok := ReadBit(seq.Pixel(i))
		if !ok {
			continue
		}
		acc = append(acc, bit)
		if payload, done := bitstream.TrimTerminator(acc); done {
			return payload, true
		}
	}
	return nil, false
}

// Inject frames msg and writes it into seq. Nothing is modified when seq
// lacks the capacity for the whole framed message.
func Inject(seq Sequence, msg []byte) error {
	bits := bitstream.Frame(msg)
	if have := Capacity(seq); have < len(bits) {
		return &CapacityError{Need: len(bits), Have: have}
	}
	Write(seq, bits)
	return nil
}

// Extract recovers a message previously injected into seq.
func Extract(seq Sequence) ([]byte, error) {
	bits, found := Read(seq)
	if !found {
		return nil, ErrTerminatorNotFound
	}
	return bitstream.Unframe(bits), nil
}

package codec

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"steganosaur/bitstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noise returns n pixels drawn from a fixed seed so failures reproduce.
func noise(n int, seed uint64) Pixels {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	px := make(Pixels, n)
	for i := range px {
		px[i] = Pixel{R: uint8(rng.UintN(256)), G: uint8(rng.UintN(256)), B: uint8(rng.UintN(256))}
	}
	return px
}

func uniform(n int, p Pixel) Pixels {
	px := make(Pixels, n)
	for i := range px {
		px[i] = p
	}
	return px
}

func TestEligible(t *testing.T) {
	for b := range 256 {
		p := Pixel{R: 0xAB, G: 0xCD, B: uint8(b)}
		assert.Equal(t, b%16 <= 5, Eligible(p), "blue %#02x", b)

		bit, ok := ReadBit(p)
		assert.Equal(t, b%16 <= 1, ok, "blue %#02x", b)
		if ok {
			assert.Equal(t, byte(b%16), bit)
		}
	}
}

func TestEmbed(t *testing.T) {
	p := Pixel{R: 0x12, G: 0x34, B: 0x5B}
	assert.Equal(t, Pixel{R: 0x12, G: 0x34, B: 0x50}, Embed(p, 0))
	assert.Equal(t, Pixel{R: 0x12, G: 0x34, B: 0x51}, Embed(p, 1))
}

func TestRoundTrip(t *testing.T) {
	msgs := [][]byte{
		[]byte("Hello world!"),
		[]byte("The quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xFE}, 64),
		{},
	}

	for i, msg := range msgs {
		px := noise(4096, uint64(i+1))
		require.NoError(t, Inject(px, msg))

		got, err := Extract(px)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}
}

func TestHiVector(t *testing.T) {
	eligible := Pixel{R: 0x10, G: 0x20, B: 0x34}
	px := uniform(50, eligible)

	bits := bitstream.Frame([]byte("Hi"))
	require.Len(t, bits, 41)
	assert.Equal(t, 41, Write(px, bits))

	for i := 41; i < len(px); i++ {
		assert.Equal(t, eligible, px[i], "pixel %d", i)
	}

	got, err := Extract(px)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(got))
}

func TestEligibilitySymmetry(t *testing.T) {
	orig := noise(2048, 7)
	px := append(Pixels(nil), orig...)
	bits := bitstream.Frame([]byte("symmetry"))
	n := Write(px, bits)
	require.Equal(t, len(bits), n)

	var consumed int
	for i := range orig {
		if consumed == len(bits) {
			assert.Equal(t, orig[i], px[i], "pixel %d past the payload", i)
			continue
		}
		if Eligible(orig[i]) {
			bit, ok := ReadBit(px[i])
			require.True(t, ok, "pixel %d was written but is unreadable", i)
			assert.Equal(t, bits[consumed], bit)
			consumed++
		} else {
			assert.Equal(t, orig[i], px[i], "ineligible pixel %d changed", i)
		}
	}
}

func TestUntouchedPixels(t *testing.T) {
	orig := noise(1024, 3)
	px := append(Pixels(nil), orig...)
	require.NoError(t, Inject(px, []byte("abc")))

	for i := range orig {
		if px[i] == orig[i] {
			continue
		}
		assert.Equal(t, orig[i].R, px[i].R)
		assert.Equal(t, orig[i].G, px[i].G)
		assert.Equal(t, orig[i].B&0xF0, px[i].B&0xF0, "only the low nibble may change")
	}
}

func TestCapacityBoundary(t *testing.T) {
	msg := []byte("K")
	bits := bitstream.Frame(msg)
	k := len(bits)

	eligible := Pixel{B: 0x05}
	ineligible := Pixel{B: 0x0F}

	px := make(Pixels, 0, 2*k)
	for range k {
		px = append(px, ineligible, eligible)
	}
	require.Equal(t, k, Capacity(px))

	require.NoError(t, Inject(px, msg))
	got, err := Extract(px)
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	short := make(Pixels, 0, 2*k)
	for range k {
		short = append(short, ineligible, eligible)
	}
	assert.Equal(t, k-1, Write(short, bits[:k-1]))
	assert.Equal(t, eligible, short[len(short)-1], "last eligible pixel must stay untouched")
}

func TestInjectInsufficientCapacity(t *testing.T) {
	orig := uniform(40, Pixel{B: 0x02})
	px := append(Pixels(nil), orig...)

	err := Inject(px, []byte("Hi"))
	require.ErrorIs(t, err, ErrInsufficientCapacity)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 41, capErr.Need)
	assert.Equal(t, 40, capErr.Have)
	assert.Equal(t, orig, px, "carrier must be untouched on failure")
}

func TestWriteTruncates(t *testing.T) {
	px := uniform(10, Pixel{B: 0x02})
	assert.Equal(t, 10, Write(px, bitstream.Frame([]byte("Hi"))))

	_, found := Read(px)
	assert.False(t, found)
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		name string
		px   Pixels
	}{
		{"empty", Pixels{}},
		{"no eligible pixels", uniform(100, Pixel{B: 0xFF})},
		{"zeros only", uniform(100, Pixel{B: 0x00})},
		{"ones only", uniform(100, Pixel{B: 0x01})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits, found := Read(tc.px)
			assert.False(t, found)
			assert.Nil(t, bits)

			_, err := Extract(tc.px)
			assert.ErrorIs(t, err, ErrTerminatorNotFound)
		})
	}
}

func TestReadStopsAtFirstTerminator(t *testing.T) {
	px := uniform(200, Pixel{B: 0x03})
	require.NoError(t, Inject(px, []byte("A")))

	// Anything after the first terminator is ignored.
	for i := 100; i < len(px); i++ {
		px[i] = Pixel{B: 0x01}
	}

	got, err := Extract(px)
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

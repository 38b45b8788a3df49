package codec

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestHexToBytes(t *testing.T) {
	b, err := HexToBytes("00ff10AB")
	if err != nil {
		t.Fatalf("HexToBytes: %v", err)
	}
	if !bytes.Equal(b, []byte{0x00, 0xff, 0x10, 0xab}) {
		t.Fatalf("unexpected bytes %x", b)
	}

	empty, err := HexToBytes("")
	if err != nil {
		t.Fatalf("HexToBytes empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no bytes, got %d", len(empty))
	}
}

func TestHexToBytesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"abc", "zz", "0g", "12 4", "0x12"} {
		if _, err := HexToBytes(in); !errors.Is(err, ErrFormat) {
			t.Fatalf("HexToBytes(%q): expected ErrFormat, got %v", in, err)
		}
	}
}

func TestBytesToHexLowercase(t *testing.T) {
	got := BytesToHex([]byte{0xAB, 0xCD, 0x01})
	if got != "abcd01" {
		t.Fatalf("BytesToHex = %q", got)
	}
}

func TestHexRoundTripNormalized(t *testing.T) {
	for i := 0; i < 64; i++ {
		raw := make([]byte, i)
		_, _ = rand.Read(raw)
		h := BytesToHex(raw)
		b, err := HexToBytes(h)
		if err != nil {
			t.Fatalf("HexToBytes: %v", err)
		}
		if BytesToHex(b) != h {
			t.Fatalf("round trip mismatch for %q", h)
		}
	}

	norm, err := NormalizeHex("C4AB0DF3")
	if err != nil {
		t.Fatalf("NormalizeHex: %v", err)
	}
	if norm != "c4ab0df3" {
		t.Fatalf("NormalizeHex = %q", norm)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"00",
		"240b31b44a27bec5062b3a74c63271a4",
		"c4ab0df3d808d72aaadbc68206483b18ff",
	}
	for _, h := range cases {
		b64, err := HexToBase64(h)
		if err != nil {
			t.Fatalf("HexToBase64(%q): %v", h, err)
		}
		back, err := Base64ToHex(b64)
		if err != nil {
			t.Fatalf("Base64ToHex(%q): %v", b64, err)
		}
		if back != h {
			t.Fatalf("round trip %q -> %q -> %q", h, b64, back)
		}
	}
}

func TestBase64KnownValue(t *testing.T) {
	b64, err := HexToBase64("48656c6c6f")
	if err != nil {
		t.Fatalf("HexToBase64: %v", err)
	}
	if b64 != "SGVsbG8=" {
		t.Fatalf("HexToBase64 = %q", b64)
	}
}

func TestBase64ToHexRejectsMalformed(t *testing.T) {
	for _, in := range []string{"SGVsbG8", "S$Vs", "===="} {
		if _, err := Base64ToHex(in); !errors.Is(err, ErrFormat) {
			t.Fatalf("Base64ToHex(%q): expected ErrFormat, got %v", in, err)
		}
	}
	if _, err := HexToBase64("abc"); !errors.Is(err, ErrFormat) {
		t.Fatalf("HexToBase64 odd length: expected ErrFormat, got %v", err)
	}
}

package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/lucasspawn/cifra/cifra"
	"github.com/lucasspawn/cifra/cifra/crypto/dh"
	"github.com/lucasspawn/cifra/cifra/record"
)

const examplePlaintext = "CBC precisa utilizar algum modo de preenchimento."

var fixedNow = func() time.Time { return time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC) }

func run(t *testing.T, input string, opts Options) string {
	t.Helper()
	return runFrom(t, strings.NewReader(input), opts)
}

func runFrom(t *testing.T, in io.Reader, opts Options) string {
	t.Helper()
	kit, err := cifra.New(dh.Reference())
	if err != nil {
		t.Fatalf("cifra.New: %v", err)
	}
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	var out bytes.Buffer
	s := New(kit, in, &out, zaptest.NewLogger(t), opts)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func newRecords(t *testing.T) (*record.Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := record.NewWriter(dir, false)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	return w, dir
}

func TestExampleDecryptionIsSaved(t *testing.T) {
	w, dir := newRecords(t)
	out := run(t, "1\nexemplo\nsair\n", Options{Records: w})

	if !strings.Contains(out, "Plaintext: '"+examplePlaintext+"'") {
		t.Fatalf("plaintext missing from output:\n%s", out)
	}
	if !strings.Contains(out, "Length: 49 characters") {
		t.Fatalf("length missing from output:\n%s", out)
	}

	path := filepath.Join(dir, "decrypted_text_20261017_093000.txt")
	data, err := record.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, line := range []string{
		"Timestamp: 17/10/2026 09:30:00",
		"Key: " + cifra.Example.KeyHex,
		"IV: " + cifra.Example.IVHex,
		"Plaintext: " + examplePlaintext,
	} {
		if !strings.Contains(string(data), line+"\n") {
			t.Fatalf("record missing %q:\n%s", line, data)
		}
	}
}

func TestManualDecryption(t *testing.T) {
	input := strings.Join([]string{
		"1",
		strings.ToLower(cifra.Example.KeyHex),
		cifra.Example.CiphertextHex,
		cifra.Example.IVHex,
		"q",
	}, "\n") + "\n"
	out := run(t, input, Options{})
	if !strings.Contains(out, examplePlaintext) {
		t.Fatalf("plaintext missing from output:\n%s", out)
	}
}

func TestDecryptionRejectsBadInput(t *testing.T) {
	w, dir := newRecords(t)
	out := run(t, "1\nzz\n00\n00\n1\n"+cifra.Example.KeyHex+"\n\n00\nsair\n", Options{Records: w})
	if !strings.Contains(out, "Fields must be valid hexadecimal.") {
		t.Fatalf("expected hex error:\n%s", out)
	}
	if !strings.Contains(out, "All fields are required.") {
		t.Fatalf("expected empty field error:\n%s", out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no record expected, found %d", len(entries))
	}
}

func TestWrongKeyReportsUniformFailure(t *testing.T) {
	input := "1\n00000000000000000000000000000000\n" + cifra.Example.CiphertextHex + "\n" + cifra.Example.IVHex + "\nsair\n"
	out := run(t, input, Options{})
	if !strings.Contains(out, "CBC decryption failed.\n") {
		t.Fatalf("expected uniform failure:\n%s", out)
	}
	if strings.Contains(out, "padding") {
		t.Fatalf("failure cause leaked:\n%s", out)
	}
}

func TestEncryptCTRWithFixedIV(t *testing.T) {
	w, dir := newRecords(t)
	input := "3\n2b7e151628aed2a6abf7158809cf4f3c\nhello world\n000102030405060708090a0b0c0d0e0f\nsair\n"
	out := run(t, input, Options{Records: w})
	if !strings.Contains(out, "Ciphertext: 389b0ba0f64d45d9a86553ec9eaae965") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "encrypted_text_20261017_093000.txt")); err != nil {
		t.Fatalf("record not written: %v", err)
	}
}

func TestCTRRoundTripThroughSession(t *testing.T) {
	input := "4\n2b7e151628aed2a6abf7158809cf4f3c\n389b0ba0f64d45d9a86553ec9eaae965\n000102030405060708090a0b0c0d0e0f\nsair\n"
	out := run(t, input, Options{})
	if !strings.Contains(out, "Plaintext: 'hello world'") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestEncryptCBCKnownAnswer(t *testing.T) {
	input := "2\n2b7e151628aed2a6abf7158809cf4f3c\nhola\n000102030405060708090a0b0c0d0e0f\nsair\n"
	out := run(t, input, Options{})
	if !strings.Contains(out, "Ciphertext: 09c85a392e1860c3ec1bd9537af2ab50") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExchangeIsSaved(t *testing.T) {
	w, dir := newRecords(t)
	out := run(t, "5\nsair\n", Options{Records: w})
	for _, prefix := range []string{"B = ", "v = ", "k = "} {
		if !strings.Contains(out, prefix) {
			t.Fatalf("missing %q in output:\n%s", prefix, out)
		}
	}
	data, err := record.ReadFile(filepath.Join(dir, "key_exchange_20261017_093000.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "g: 10\n") {
		t.Fatalf("record missing generator:\n%s", data)
	}
}

func TestConversions(t *testing.T) {
	out := run(t, "6\n48656c6c6f\n7\nSGVsbG8=\n6\nabc\nsair\n", Options{})
	if !strings.Contains(out, "Base64: SGVsbG8=") {
		t.Fatalf("hex to base64 missing:\n%s", out)
	}
	if !strings.Contains(out, "Hex: 48656c6c6f") {
		t.Fatalf("base64 to hex missing:\n%s", out)
	}
	if !strings.Contains(out, "Conversion failed: codec: malformed input") {
		t.Fatalf("format error missing:\n%s", out)
	}
}

// lineReader hands out at most one line per Read, like a terminal in
// canonical mode.
type lineReader struct {
	lines []string
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.lines) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.lines[0])
	r.lines[0] = r.lines[0][n:]
	if r.lines[0] == "" {
		r.lines = r.lines[1:]
	}
	return n, nil
}

func TestSecretReaderIsUsedForKeys(t *testing.T) {
	calls := 0
	opts := Options{ReadSecret: func() (string, error) {
		calls++
		return cifra.Example.KeyHex, nil
	}}
	in := &lineReader{lines: []string{
		"1\n",
		cifra.Example.CiphertextHex + "\n",
		cifra.Example.IVHex + "\n",
		"sair\n",
	}}
	out := runFrom(t, in, opts)
	if calls != 1 {
		t.Fatalf("ReadSecret called %d times", calls)
	}
	if !strings.Contains(out, examplePlaintext) {
		t.Fatalf("plaintext missing:\n%s", out)
	}
}

func TestTypedAheadKeyComesFromBuffer(t *testing.T) {
	calls := 0
	opts := Options{ReadSecret: func() (string, error) {
		calls++
		return "", errors.New("secret reader must not run")
	}}
	input := "1\n" + cifra.Example.KeyHex + "\n" + cifra.Example.CiphertextHex + "\n" + cifra.Example.IVHex + "\nsair\n"
	out := run(t, input, opts)
	if calls != 0 {
		t.Fatalf("ReadSecret called %d times with buffered input", calls)
	}
	if !strings.Contains(out, examplePlaintext) {
		t.Fatalf("plaintext missing:\n%s", out)
	}
}

func TestQuitWordIsPlainTextWhenEncrypting(t *testing.T) {
	input := "3\n2b7e151628aed2a6abf7158809cf4f3c\nexit\n000102030405060708090a0b0c0d0e0f\n6\n00\nsair\n"
	out := run(t, input, Options{})
	if !strings.Contains(out, "Ciphertext: 35860eb895613ebad6053be597a3e06c") {
		t.Fatalf("expected 'exit' to be encrypted:\n%s", out)
	}
	if !strings.Contains(out, "Base64: AA==") {
		t.Fatalf("session ended early:\n%s", out)
	}
}

func TestRunStopsWhenCancelledAtPrompt(t *testing.T) {
	kit, _ := cifra.New(dh.Reference())
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s := New(kit, pr, io.Discard, zaptest.NewLogger(t), Options{})
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run still blocked after cancel")
	}
}

func TestRunStopsWhenCancelledAtSecretPrompt(t *testing.T) {
	kit, _ := cifra.New(dh.Reference())
	block := make(chan struct{})
	defer close(block)
	opts := Options{ReadSecret: func() (string, error) {
		<-block
		return "", io.EOF
	}}

	ctx, cancel := context.WithCancel(context.Background())
	in := &lineReader{lines: []string{"1\n"}}
	s := New(kit, in, io.Discard, zaptest.NewLogger(t), opts)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run still blocked in secret prompt after cancel")
	}
}

func TestQuitAndEOF(t *testing.T) {
	for _, input := range []string{"", "sair", "9\n\nQUIT\n", "1\nexemplo"} {
		out := run(t, input, Options{})
		if !strings.Contains(out, "Bye.") {
			t.Fatalf("input %q: expected clean exit:\n%s", input, out)
		}
	}
	if out := run(t, "9\nsair\n", Options{}); !strings.Contains(out, `Unknown option "9"`) {
		t.Fatalf("expected unknown option message:\n%s", out)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	kit, _ := cifra.New(dh.Reference())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(kit, strings.NewReader("5\n"), &bytes.Buffer{}, nil, Options{})
	if err := s.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNoColorWhenDisabled(t *testing.T) {
	out := run(t, "sair\n", Options{Color: false})
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI escape in output")
	}
}

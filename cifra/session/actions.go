package session

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lucasspawn/cifra/cifra"
	"github.com/lucasspawn/cifra/cifra/codec"
	"github.com/lucasspawn/cifra/cifra/record"
)

var exampleWords = map[string]bool{"exemplo": true, "example": true}

// requireHex rejects empty and non-hex fields before the core sees them.
func (s *Session) requireHex(fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			s.failure.Fprintln(s.out, "All fields are required.")
			return false
		}
		if _, err := codec.HexToBytes(f); err != nil {
			s.failure.Fprintln(s.out, "Fields must be valid hexadecimal.")
			return false
		}
	}
	return true
}

func (s *Session) reportFailure(op string, err error) {
	kind := cifra.KindOf(err)
	s.log.Warn("operation failed", zap.String("op", op), zap.Stringer("kind", kind))
	if kind == cifra.KindCrypto {
		// no detail: the cause of a crypto failure is not shown
		s.failure.Fprintf(s.out, "%s failed.\n", op)
		return
	}
	s.failure.Fprintf(s.out, "%s failed: %v\n", op, err)
}

func (s *Session) decryptCBC(ctx context.Context) error {
	keyHex, err := s.askSecret(ctx, "AES key (hex)")
	if err != nil {
		return err
	}

	var ctHex, ivHex string
	if exampleWords[strings.ToLower(keyHex)] {
		keyHex, ctHex, ivHex = cifra.Example.KeyHex, cifra.Example.CiphertextHex, cifra.Example.IVHex
		s.info.Fprintln(s.out, "Using the example vector:")
		s.info.Fprintf(s.out, "  IV:         %s\n", ivHex)
		s.info.Fprintf(s.out, "  Ciphertext: %s...\n", ctHex[:32])
	} else {
		if ctHex, err = s.ask(ctx, "Ciphertext (hex)"); err != nil {
			return err
		}
		if ivHex, err = s.ask(ctx, "IV (hex)"); err != nil {
			return err
		}
	}
	if !s.requireHex(keyHex, ctHex, ivHex) {
		return nil
	}

	plaintext, err := s.kit.DecryptCBCHex(keyHex, ctHex, ivHex)
	if err != nil {
		s.reportFailure("CBC decryption", err)
		return nil
	}
	s.success.Fprintln(s.out, "Decryption complete.")
	s.success.Fprintf(s.out, "Plaintext: '%s'\n", plaintext)
	s.success.Fprintf(s.out, "Length: %d characters\n", utf8.RuneCountInString(plaintext))
	s.save(record.Decryption(s.opts.Now(), "CBC", keyHex, ivHex, ctHex, plaintext))
	return nil
}

func (s *Session) decryptCTR(ctx context.Context) error {
	keyHex, err := s.askSecret(ctx, "AES key (hex)")
	if err != nil {
		return err
	}
	ctHex, err := s.ask(ctx, "Ciphertext (hex)")
	if err != nil {
		return err
	}
	ivHex, err := s.ask(ctx, "IV (hex)")
	if err != nil {
		return err
	}
	if !s.requireHex(keyHex, ctHex, ivHex) {
		return nil
	}

	plaintext, err := s.kit.DecryptCTRHex(keyHex, ctHex, ivHex)
	if err != nil {
		s.reportFailure("CTR decryption", err)
		return nil
	}
	s.success.Fprintf(s.out, "Plaintext: '%s'\n", plaintext)
	s.save(record.Decryption(s.opts.Now(), "CTR", keyHex, ivHex, ctHex, plaintext))
	return nil
}

func (s *Session) encryptCBC(ctx context.Context) error {
	return s.encrypt(ctx, "CBC", s.kit.EncryptCBCHex)
}

func (s *Session) encryptCTR(ctx context.Context) error {
	return s.encrypt(ctx, "CTR", s.kit.EncryptCTRHex)
}

func (s *Session) encrypt(ctx context.Context, mode string, enc func(keyHex, plaintext, ivHex string) (string, string, error)) error {
	keyHex, err := s.askSecret(ctx, "AES key (hex)")
	if err != nil {
		return err
	}
	plaintext, err := s.askText(ctx, "Plaintext")
	if err != nil {
		return err
	}
	ivHex, err := s.ask(ctx, "IV (hex, empty for random)")
	if err != nil {
		return err
	}
	if !s.requireHex(keyHex) {
		return nil
	}
	if ivHex != "" && !s.requireHex(ivHex) {
		return nil
	}

	ivOut, ctHex, err := enc(keyHex, plaintext, ivHex)
	if err != nil {
		s.reportFailure(mode+" encryption", err)
		return nil
	}
	s.success.Fprintf(s.out, "IV:         %s\n", ivOut)
	s.success.Fprintf(s.out, "Ciphertext: %s\n", ctHex)
	s.save(record.Encryption(s.opts.Now(), mode, keyHex, ivOut, plaintext, ctHex))
	return nil
}

func (s *Session) exchange(ctx context.Context) error {
	ex, err := s.kit.Exchange()
	if err != nil {
		s.reportFailure("Key exchange", err)
		return nil
	}
	s.success.Fprintf(s.out, "B = %s\n", ex.Public)
	s.success.Fprintf(s.out, "v = %s\n", ex.Shared)
	s.success.Fprintf(s.out, "k = %s\n", ex.Key)
	s.save(record.Exchange(s.opts.Now(),
		ex.Params.P.String(), ex.Params.G.String(), ex.Params.A.String(),
		ex.Private.String(), ex.Public.String(), ex.Shared.String(), ex.Key))
	return nil
}

func (s *Session) hexToBase64(ctx context.Context) error {
	in, err := s.ask(ctx, "Hex")
	if err != nil {
		return err
	}
	out, err := s.kit.HexToBase64(in)
	if err != nil {
		s.reportFailure("Conversion", err)
		return nil
	}
	s.success.Fprintf(s.out, "Base64: %s\n", out)
	return nil
}

func (s *Session) base64ToHex(ctx context.Context) error {
	in, err := s.ask(ctx, "Base64")
	if err != nil {
		return err
	}
	out, err := s.kit.Base64ToHex(in)
	if err != nil {
		s.reportFailure("Conversion", err)
		return nil
	}
	s.success.Fprintf(s.out, "Hex: %s\n", out)
	return nil
}

package record

import (
	"bytes"
	"fmt"
	"time"
)

// TimeLayout is the human-readable timestamp written on the first line.
const TimeLayout = "02/01/2006 15:04:05"

// Kind names the operation a record describes. It is also the file-name prefix.
type Kind string

const (
	KindDecryption Kind = "decrypted_text"
	KindEncryption Kind = "encrypted_text"
	KindExchange   Kind = "key_exchange"
)

// Field is one labelled line of a record.
type Field struct {
	Label string
	Value string
}

// Record is an immutable result of one operation.
type Record struct {
	Kind   Kind
	Time   time.Time
	Fields []Field
}

// Decryption records a successful decryption.
func Decryption(at time.Time, mode, keyHex, ivHex, ciphertextHex, plaintext string) Record {
	return Record{
		Kind: KindDecryption,
		Time: at,
		Fields: []Field{
			{"Mode", mode},
			{"Key", keyHex},
			{"IV", ivHex},
			{"Ciphertext", ciphertextHex},
			{"Plaintext", plaintext},
		},
	}
}

// Encryption records a successful encryption.
func Encryption(at time.Time, mode, keyHex, ivHex, plaintext, ciphertextHex string) Record {
	return Record{
		Kind: KindEncryption,
		Time: at,
		Fields: []Field{
			{"Mode", mode},
			{"Key", keyHex},
			{"IV", ivHex},
			{"Plaintext", plaintext},
			{"Ciphertext", ciphertextHex},
		},
	}
}

// Exchange records one Diffie-Hellman computation. All values are decimal
// except the derived key.
func Exchange(at time.Time, p, g, a, private, public, shared, key string) Record {
	return Record{
		Kind: KindExchange,
		Time: at,
		Fields: []Field{
			{"p", p},
			{"g", g},
			{"A", a},
			{"b", private},
			{"B", public},
			{"v", shared},
			{"k", key},
		},
	}
}

// Encode renders the record as text:
//
//	Timestamp: 02/01/2006 15:04:05
//	<Label>: <Value>
//	...
func (r Record) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Timestamp: %s\n", r.Time.Format(TimeLayout))
	for _, f := range r.Fields {
		fmt.Fprintf(&buf, "%s: %s\n", f.Label, f.Value)
	}
	return buf.Bytes()
}

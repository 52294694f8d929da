package scorecode

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"strings"
)

// Version is the current payload layout.
const Version = 1

// Alphabet is Crockford's base32 alphabet (no I, L, O, U).
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	payloadLen = 20 // version(1) score(4) level(1) kills(2) ts(4) seed(4) crc(4)
	bodyLen    = payloadLen - 4

	// CodeLen is the length of an encoded score code. 20 bytes are exactly
	// 32 base32 characters, so every character carries five payload bits.
	CodeLen = payloadLen * 8 / 5
)

var (
	encoding   = base32.NewEncoding(Alphabet).WithPadding(base32.NoPadding)
	castagnoli = crc32.MakeTable(crc32.Castagnoli)
)

var (
	ErrMalformed = errors.New("malformed code")
	ErrVersion   = errors.New("unsupported code version")
	ErrChecksum  = errors.New("checksum mismatch")
)

// DecodeError describes why a code was rejected. Kind is one of
// ErrMalformed, ErrVersion or ErrChecksum.
type DecodeError struct {
	Kind   error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return "scorecode: " + e.Kind.Error()
	}
	return fmt.Sprintf("scorecode: %s: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// Codec encodes records into codes. Seed keys the checksum so codes from a
// build with a different seed do not verify.
type Codec struct {
	Seed uint32
}

// Encode renders r as a fixed-length code. Fields that do not fit the
// payload are an error.
func (c Codec) Encode(r Record) (string, error) {
	switch {
	case r.Score < 0 || r.Score > math.MaxUint32:
		return "", fmt.Errorf("scorecode: score %d out of range", r.Score)
	case r.LevelReached < 0 || r.LevelReached > math.MaxUint8:
		return "", fmt.Errorf("scorecode: level %d out of range", r.LevelReached)
	case r.Kills < 0 || r.Kills > math.MaxUint16:
		return "", fmt.Errorf("scorecode: kills %d out of range", r.Kills)
	case r.Timestamp < 0 || r.Timestamp > math.MaxUint32:
		return "", fmt.Errorf("scorecode: timestamp %d out of range", r.Timestamp)
	}

	buf := make([]byte, payloadLen)
	buf[0] = Version
	binary.BigEndian.PutUint32(buf[1:5], uint32(r.Score))
	buf[5] = uint8(r.LevelReached)
	binary.BigEndian.PutUint16(buf[6:8], uint16(r.Kills))
	binary.BigEndian.PutUint32(buf[8:12], uint32(r.Timestamp))
	binary.BigEndian.PutUint32(buf[12:16], r.ChecksumSeed)
	binary.BigEndian.PutUint32(buf[16:20], c.checksum(buf[:bodyLen]))

	return encoding.EncodeToString(buf), nil
}

// Decode parses a code. On failure it returns a *DecodeError and a zero
// Record. Decoding is strict: no case folding, separators or whitespace.
func (c Codec) Decode(code string) (Record, error) {
	if len(code) != CodeLen {
		return Record{}, &DecodeError{Kind: ErrMalformed, Detail: fmt.Sprintf("want %d characters, got %d", CodeLen, len(code))}
	}
	if i := strings.IndexFunc(code, func(r rune) bool { return !strings.ContainsRune(Alphabet, r) }); i >= 0 {
		return Record{}, &DecodeError{Kind: ErrMalformed, Detail: fmt.Sprintf("invalid character at %d", i)}
	}
	buf, err := encoding.DecodeString(code)
	if err != nil || len(buf) != payloadLen {
		return Record{}, &DecodeError{Kind: ErrMalformed, Detail: "base32"}
	}

	// The checksum covers the version byte, so it is verified first.
	if got, want := binary.BigEndian.Uint32(buf[16:20]), c.checksum(buf[:bodyLen]); got != want {
		return Record{}, &DecodeError{Kind: ErrChecksum}
	}
	if buf[0] != Version {
		return Record{}, &DecodeError{Kind: ErrVersion, Detail: fmt.Sprintf("version %d", buf[0])}
	}

	return Record{
		Score:        int64(binary.BigEndian.Uint32(buf[1:5])),
		LevelReached: int(buf[5]),
		Kills:        int(binary.BigEndian.Uint16(buf[6:8])),
		Timestamp:    int64(binary.BigEndian.Uint32(buf[8:12])),
		ChecksumSeed: binary.BigEndian.Uint32(buf[12:16]),
	}, nil
}

// checksum is CRC-32C over the codec seed followed by the payload body.
func (c Codec) checksum(body []byte) uint32 {
	var seed [4]byte
	binary.BigEndian.PutUint32(seed[:], c.Seed)
	sum := crc32.Update(0, castagnoli, seed[:])
	return crc32.Update(sum, castagnoli, body)
}

// Format groups a code for display, e.g. "0123-4567-...". Decode does not
// accept the grouped form; use Normalize first.
func Format(code string) string {
	var b strings.Builder
	for i, r := range code {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize strips display grouping and surrounding whitespace. It does not
// fold case: codes are case-sensitive.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}

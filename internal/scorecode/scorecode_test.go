package scorecode

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/level"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func testLimits() Limits {
	return Limits{
		Budgets:           []int{10, 16, 24},
		MaxPointsPerKill:  250,
		LevelClearBonus:   500,
		EarliestTimestamp: 1704067200,
		FutureSkew:        86400,
	}
}

func sampleRecord() Record {
	return Record{
		Score:        3450,
		LevelReached: 2,
		Kills:        17,
		Timestamp:    testNow.Unix() - 3600,
		ChecksumSeed: 0xDEADBEEF,
	}
}

func TestRoundTrip(t *testing.T) {
	c := Codec{Seed: 0x5C0A7ED5}
	records := []Record{
		sampleRecord(),
		{LevelReached: 1},
		{Score: 1<<32 - 1, LevelReached: 255, Kills: 65535, Timestamp: 1<<32 - 1, ChecksumSeed: 1<<32 - 1},
	}

	for _, r := range records {
		code, err := c.Encode(r)
		require.NoError(t, err)
		assert.Len(t, code, CodeLen)

		again, err := c.Encode(r)
		require.NoError(t, err)
		assert.Equal(t, code, again, "encoding must be deterministic")

		got, err := c.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestSingleSubstitutionDetected(t *testing.T) {
	c := Codec{Seed: 0x5C0A7ED5}
	code, err := c.Encode(sampleRecord())
	require.NoError(t, err)

	for i := 0; i < len(code); i++ {
		for _, ch := range Alphabet {
			if byte(ch) == code[i] {
				continue
			}
			tampered := code[:i] + string(ch) + code[i+1:]
			got, err := c.Decode(tampered)
			require.ErrorIs(t, err, ErrChecksum, "position %d -> %c", i, ch)
			assert.Equal(t, Record{}, got)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	c := Codec{Seed: 7}
	code, err := c.Encode(sampleRecord())
	require.NoError(t, err)

	tests := []struct {
		name string
		code string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"short", code[:31], ErrMalformed},
		{"long", code + "0", ErrMalformed},
		{"lowercase", strings.ToLower(code), ErrMalformed},
		{"excluded letter", "U" + code[1:], ErrMalformed},
		{"hyphenated", Format(code)[:CodeLen], ErrMalformed},
		{"other seed", mustEncode(t, Codec{Seed: 8}, sampleRecord()), ErrChecksum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.code)
			assert.ErrorIs(t, err, tt.want)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
			assert.Equal(t, Record{}, got)
		})
	}
}

func TestDecodeUnknownVersion(t *testing.T) {
	c := Codec{Seed: 7}
	// Build a payload with version 2 and a valid checksum.
	buf := make([]byte, payloadLen)
	buf[0] = 2
	buf[5] = 1
	sum := c.checksum(buf[:bodyLen])
	buf[16], buf[17], buf[18], buf[19] = byte(sum>>24), byte(sum>>16), byte(sum>>8), byte(sum)

	_, err := c.Decode(encoding.EncodeToString(buf))
	assert.ErrorIs(t, err, ErrVersion)
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	c := Codec{}
	bad := []Record{
		{Score: -1, LevelReached: 1},
		{Score: 1 << 33, LevelReached: 1},
		{LevelReached: 300},
		{LevelReached: 1, Kills: -1},
		{LevelReached: 1, Timestamp: -5},
	}
	for _, r := range bad {
		_, err := c.Encode(r)
		assert.Error(t, err, "%+v", r)
	}
}

func TestNormalize(t *testing.T) {
	c := Codec{Seed: 1}
	code := mustEncode(t, c, sampleRecord())
	_, err := c.Decode(Normalize("  " + Format(code) + "\n"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	lim := testLimits()
	tests := []struct {
		name   string
		mutate func(r *Record)
		want   Reason
	}{
		{"valid", func(r *Record) {}, ReasonOK},
		{"zero score level one", func(r *Record) { *r = Record{LevelReached: 1, Timestamp: r.Timestamp} }, ReasonOK},
		{"negative", func(r *Record) { r.Score = -1 }, ReasonNegative},
		{"level zero", func(r *Record) { r.LevelReached = 0 }, ReasonLevelRange},
		{"level past end", func(r *Record) { r.LevelReached = 4 }, ReasonLevelRange},
		{"negative kills", func(r *Record) { r.Kills = -1 }, ReasonKills},
		{"too many kills", func(r *Record) { r.Kills = 27 }, ReasonKills},
		{"max score", func(r *Record) { r.Score = lim.MaxScore(2) }, ReasonOK},
		{"over max", func(r *Record) { r.Score = lim.MaxScore(2) + 1 }, ReasonImplausible},
		{"too old", func(r *Record) { r.Timestamp = lim.EarliestTimestamp - 1 }, ReasonTimestamp},
		{"future", func(r *Record) { r.Timestamp = testNow.Unix() + lim.FutureSkew + 1 }, ReasonTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleRecord()
			tt.mutate(&r)
			ok, reason := Validate(r, lim, testNow)
			assert.Equal(t, tt.want, reason)
			assert.Equal(t, tt.want == ReasonOK, ok)
		})
	}
}

func TestMaxScore(t *testing.T) {
	lim := testLimits()
	assert.Equal(t, int64(10*250+500), lim.MaxScore(1))
	assert.Equal(t, int64((10+16)*250+2*500), lim.MaxScore(2))
	assert.Equal(t, 50, lim.MaxKills(3))
}

func TestLimitsFor(t *testing.T) {
	levels, err := level.LoadDefault()
	require.NoError(t, err)
	lim := LimitsFor(config.DefaultGameConfig(), levels)
	assert.Len(t, lim.Budgets, 3)
	assert.Equal(t, 250, lim.MaxPointsPerKill)
	assert.Equal(t, 500, lim.LevelClearBonus)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		r    Reason
	}{
		{"0", 0, ReasonOK},
		{" 1200 ", 1200, ReasonOK},
		{"1200.0", 1200, ReasonOK},
		{"12.5", 0, ReasonNonIntegral},
		{"-1", 0, ReasonNegative},
		{"abc", 0, ReasonNonIntegral},
		{"NaN", 0, ReasonNonIntegral},
	}
	for _, tt := range tests {
		got, reason := ParseScore(tt.in)
		assert.Equal(t, tt.r, reason, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

type memSink struct {
	codes map[string]Record
}

func (m *memSink) Admit(_ context.Context, code string, r Record) (bool, error) {
	if _, ok := m.codes[code]; ok {
		return false, nil
	}
	m.codes[code] = r
	return true, nil
}

func TestImporter(t *testing.T) {
	sink := &memSink{codes: map[string]Record{}}
	im := &Importer{
		Codec:  Codec{Seed: 42},
		Limits: testLimits(),
		Sink:   sink,
		Now:    func() time.Time { return testNow },
	}
	ctx := context.Background()

	good := mustEncode(t, im.Codec, sampleRecord())
	r, err := im.Import(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), r)
	assert.Len(t, sink.codes, 1)

	// Re-import is idempotent.
	_, err = im.Import(ctx, good)
	require.NoError(t, err)
	assert.Len(t, sink.codes, 1)

	// Tampered code.
	last := good[CodeLen-1]
	swap := "0"
	if last == '0' {
		swap = "1"
	}
	_, err = im.Import(ctx, good[:CodeLen-1]+swap)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.ErrorIs(t, err, ErrChecksum)

	// Well-formed but implausible.
	cheat := sampleRecord()
	cheat.Score = 1_000_000
	_, err = im.Import(ctx, mustEncode(t, im.Codec, cheat))
	assert.ErrorIs(t, err, ErrInvalidCode)
	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, ReasonImplausible, rej.Reason)
	assert.Len(t, sink.codes, 1)
}

func TestRank(t *testing.T) {
	entries := []Entry{
		{Code: "a", Record: Record{Score: 100, Timestamp: 5}},
		{Code: "b", Record: Record{Score: 300, Timestamp: 9}},
		{Code: "c", Record: Record{Score: 100, Timestamp: 2}},
		{Code: "d", Record: Record{Score: 200, Timestamp: 1}},
	}
	Rank(entries)

	var order []string
	for _, e := range entries {
		order = append(order, e.Code)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, order)
}

func mustEncode(t *testing.T, c Codec, r Record) string {
	t.Helper()
	code, err := c.Encode(r)
	require.NoError(t, err)
	return code
}

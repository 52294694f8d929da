package scorecode

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidCode wraps every reason a code is refused by Import.
var ErrInvalidCode = errors.New("scorecode: invalid code")

// RejectedError reports a code that decoded but failed validation.
type RejectedError struct {
	Reason Reason
}

func (e *RejectedError) Error() string {
	return "scorecode: rejected: " + e.Reason.String()
}

// Entry is a leaderboard row.
type Entry struct {
	Code string
	Record
}

// Sink is where accepted records go. Admit must be idempotent per code and
// reports whether the code was new.
type Sink interface {
	Admit(ctx context.Context, code string, r Record) (bool, error)
}

// Importer admits externally supplied codes to a leaderboard.
type Importer struct {
	Codec  Codec
	Limits Limits
	Sink   Sink
	Now    func() time.Time
}

// Import decodes, validates and admits code. Decode and validation failures
// are returned wrapped in ErrInvalidCode; the sink is never touched for them.
func (im *Importer) Import(ctx context.Context, code string) (Record, error) {
	r, err := im.Verify(code)
	if err != nil {
		return Record{}, err
	}
	if _, err := im.Sink.Admit(ctx, code, r); err != nil {
		return Record{}, fmt.Errorf("scorecode: admit: %w", err)
	}
	return r, nil
}

// Verify decodes and validates code without admitting it.
func (im *Importer) Verify(code string) (Record, error) {
	r, err := im.Codec.Decode(code)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	now := time.Now
	if im.Now != nil {
		now = im.Now
	}
	if ok, reason := Validate(r, im.Limits, now()); !ok {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidCode, &RejectedError{Reason: reason})
	}
	return r, nil
}

// Rank orders entries best first: higher score, then earlier timestamp.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Timestamp < entries[j].Timestamp
	})
}

package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	orderNumberPrefix = "ORD"
	sequenceDigits    = 4
	maxDailySequence  = 9999
)

// DayPrefix returns the date-scoped part of an order number, e.g. ORD250123.
func DayPrefix(t time.Time) string {
	return orderNumberPrefix + t.Format("060102")
}

// FormatOrderNumber renders ORD<YY><MM><DD><NNNN> with a zero-padded
// 4-digit daily sequence, e.g. ORD2501230007.
func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s%0*d", DayPrefix(t), sequenceDigits, seq)
}

// NextSequence computes the next daily sequence from the highest existing
// order number of the day. An empty lastNumber starts the day at 1. Rolling
// past 9999 is rejected outright rather than overflowing into a fifth digit.
func NextSequence(lastNumber string) (int, error) {
	if lastNumber == "" {
		return 1, nil
	}

	if len(lastNumber) < sequenceDigits {
		return 0, fmt.Errorf("malformed order number %q", lastNumber)
	}

	tail := lastNumber[len(lastNumber)-sequenceDigits:]
	seq, err := strconv.Atoi(strings.TrimLeft(tail, "0"))
	if err != nil {
		return 0, fmt.Errorf("malformed order number %q: %w", lastNumber, err)
	}

	if seq >= maxDailySequence {
		return 0, ErrSequenceExhausted
	}

	return seq + 1, nil
}

package pairviz

import (
	"fmt"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Panic on error
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Integer division rounding toward negative infinity
func FloorDiv(x, y int64) int64 {
	q := x / y
	if (x % y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

// Hits per million total hits, per kilobase of bin length
func Fpkm(count, totalHits, length int64) float64 {
	perMillion := float64(count) * 1e6 / float64(totalHits)
	return perMillion * 1e3 / float64(length)
}

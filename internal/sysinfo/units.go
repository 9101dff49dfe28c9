// Package sysinfo gathers host facts into an ordered report and renders it
// as a plain-text block or a rich embed.
package sysinfo

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	bytesPerGB = 1 << 30
	bytesPerMB = 1 << 20
)

// ErrZeroTotal is returned when a percentage is requested of a zero total.
var ErrZeroTotal = errors.New("total is zero")

// BytesToGB formats n as gibibytes with two decimals, without a unit suffix.
func BytesToGB(n uint64) string {
	return strconv.FormatFloat(float64(n)/bytesPerGB, 'f', 2, 64)
}

// BytesToMB formats n as mebibytes with one decimal, without a unit suffix.
func BytesToMB(n uint64) string {
	return strconv.FormatFloat(float64(n)/bytesPerMB, 'f', 1, 64)
}

// Percentage formats used/total*100 with the given number of decimals.
// A zero total yields a zero of the same precision and ErrZeroTotal.
func Percentage(used, total uint64, digits int) (string, error) {
	if digits < 0 {
		digits = 0
	}
	if total == 0 {
		return strconv.FormatFloat(0, 'f', digits, 64), ErrZeroTotal
	}
	return strconv.FormatFloat(float64(used)/float64(total)*100, 'f', digits, 64), nil
}

// usage renders "<used>GB / <total>GB (<pct>% used)".
func usage(used, total uint64) (string, error) {
	pct, err := Percentage(used, total, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sGB / %sGB (%s%% used)", BytesToGB(used), BytesToGB(total), pct), nil
}

// usedOf returns total-free, clamped at zero.
func usedOf(total, free uint64) uint64 {
	if free > total {
		return 0
	}
	return total - free
}

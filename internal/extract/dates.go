// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	numericDatePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	spelledDatePattern = regexp.MustCompile(`(?i)(\d{1,2})\s*de\s*(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|setiembre|octubre|noviembre|diciembre)\s*del?\s*(\d{2,4})`)
)

// Years outside this range are OCR misreads.
const (
	minYear = 1900
	maxYear = 2100

	secondsPerDay = 24 * 60 * 60
)

var monthNames = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Date is a calendar date found in a document.
type Date struct {
	Day   int
	Month time.Month
	Year  int
	// Source is the matched text.
	Source string
}

// String renders the date as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// FindDate returns the first parseable date in text. Numeric dates
// (05/05/2024, 05-05-2024, 05/05/24) are tried before spelled-out ones
// (5 de mayo de 2024). Candidates that do not form a real calendar date are
// skipped.
func FindDate(text string) (Date, bool) {
	for _, m := range numericDatePattern.FindAllStringSubmatch(text, -1) {
		month, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if d, ok := buildDate(m[1], time.Month(month), m[3], m[0]); ok {
			return d, true
		}
	}

	for _, m := range spelledDatePattern.FindAllStringSubmatch(text, -1) {
		month, ok := monthNames[toLowerASCII(m[2])]
		if !ok {
			continue
		}
		if d, ok := buildDate(m[1], month, m[3], m[0]); ok {
			return d, true
		}
	}

	return Date{}, false
}

// HasDateCandidate reports whether text contains something shaped like a
// date, parseable or not.
func HasDateCandidate(text string) bool {
	return numericDatePattern.MatchString(text) || spelledDatePattern.MatchString(text)
}

// DaysSince counts whole calendar days from d to the calendar day of now.
// Dates in the future give a negative count.
func DaysSince(d Date, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int((today.Unix() - d.Time().Unix()) / secondsPerDay)
}

// Recent reports the age of d in days and whether it falls within
// [0, maxAgeDays].
func Recent(d Date, now time.Time, maxAgeDays int) (int, bool) {
	days := DaysSince(d, now)
	return days, days >= 0 && days <= maxAgeDays
}

func buildDate(dayText string, month time.Month, yearText, source string) (Date, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return Date{}, false
	}

	var year int
	switch len(yearText) {
	case 2:
		year, err = strconv.Atoi("20" + yearText)
	case 4:
		year, err = strconv.Atoi(yearText)
	default:
		return Date{}, false
	}
	if err != nil || year < minYear || year > maxYear {
		return Date{}, false
	}

	if month < time.January || month > time.December || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return Date{}, false
	}

	return Date{Day: day, Month: month, Year: year, Source: source}, true
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

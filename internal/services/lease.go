package services

import (
	"math"
	"strings"
	"time"

	"roomledger/internal/common"
)

// LeaseTermMonths is the default length of a lease.
const LeaseTermMonths = 11

// ComputePeriodTo returns the end of a lease starting at from. Days past
// the end of the target month roll over into the following month, so
// 2023-03-31 ends on 2024-03-02.
func ComputePeriodTo(from time.Time) time.Time {
	return from.AddDate(0, LeaseTermMonths, 0)
}

// ResolvePeriod parses the supplied period bounds. An explicit periodTo is
// kept as-is; when only periodFrom is given, periodTo is derived from it.
// Blank strings count as absent.
func ResolvePeriod(periodFrom, periodTo *string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if present(periodFrom) {
		d, err := common.ParseDate(*periodFrom, "periodFrom")
		if err != nil {
			return nil, nil, invalid("periodFrom", err)
		}
		from = &d
	}

	if present(periodTo) {
		d, err := common.ParseDate(*periodTo, "periodTo")
		if err != nil {
			return nil, nil, invalid("periodTo", err)
		}
		to = &d
	} else if from != nil {
		d := ComputePeriodTo(*from)
		to = &d
	}

	return from, to, nil
}

func validateRent(rent *int) error {
	if rent == nil {
		return nil
	}
	if *rent < 0 {
		return invalidf("rentAmount", "rentAmount must be a non-negative number")
	}
	if *rent > math.MaxInt32 {
		return invalidf("rentAmount", "rentAmount must not exceed %d", math.MaxInt32)
	}
	return nil
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

package entity

import "time"

// Date truncates a timestamp to its calendar day in UTC. Every date stored or
// compared by the engine goes through this so day math never sees a time component.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open interval [CheckIn, CheckOut): the check-out day itself
// is never occupied.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: Date(checkIn), CheckOut: Date(checkOut)}
}

func (r DateRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Days enumerates every night of the range, check-out day excluded.
func (r DateRange) Days() []time.Time {
	if !r.IsValid() {
		return nil
	}
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) Contains(d time.Time) bool {
	day := Date(d)
	return !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

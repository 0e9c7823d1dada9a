package model

import "time"

// AgeAt returns the whole years between birth and asOf: the year difference,
// minus one when asOf's month/day falls before the birthday. Calendar dates
// only, no timezone handling.
func AgeAt(birth, asOf time.Time) int {
	age := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeAt returns the actor's age at the given date, false when the birthday
// is unknown.
func (a *Actor) AgeAt(t time.Time) (int, bool) {
	if a.Birthday == nil {
		return 0, false
	}
	return AgeAt(*a.Birthday, t), true
}

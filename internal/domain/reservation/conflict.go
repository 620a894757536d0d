package reservation

// HasConflict reports whether some existing reservation other than the
// candidate itself already holds the candidate's lab, date and slot.
func HasConflict(candidate Reservation, existing []Reservation) bool {
	_, ok := FindConflict(candidate, existing)
	return ok
}

// FindConflict returns the first existing reservation colliding with candidate.
// A record is only "the candidate itself" when both carry the same non-empty id.
func FindConflict(candidate Reservation, existing []Reservation) (Reservation, bool) {
	k := candidate.Key()
	for _, r := range existing {
		if r.Key() == k && (candidate.ID == "" || r.ID != candidate.ID) {
			return r, true
		}
	}
	return Reservation{}, false
}

package clock

import "time"

// Clock yields the current local civil time in the fixed operating timezone.
// Every registration request derives "now" exactly once from this value; the
// stages downstream never re-read the wall clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type localClock struct {
	loc *time.Location
}

// NewLocal returns a Clock pinned to the named IANA timezone.
func NewLocal(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return localClock{loc: loc}, nil
}

func (c localClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c localClock) Location() *time.Location {
	return c.loc
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

func (f Fixed) Location() *time.Location {
	return f.T.Location()
}

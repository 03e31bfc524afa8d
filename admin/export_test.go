package admin

import "time"

// SetNowFunc overrides the service clock in tests.
func SetNowFunc(s *Service, now func() time.Time) {
	s.now = now
}

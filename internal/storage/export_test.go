package storage

import "time"

func (s *RentalStorage) SetTimeNow(now func() time.Time) {
	s.timeNow = now
}

var PasswordDigest = passwordDigest

package wizard

import "time"

func (m *Machine) SetTimeNow(now func() time.Time) {
	m.timeNow = now
}

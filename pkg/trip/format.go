package trip

import (
	"fmt"
	"time"
)

// TimeLayout is the layout of the timestamp label shown next to the marker.
const TimeLayout = "02 Jan 2006 15.04.05"

// TimeLabel formats the record time for display in the given zone.
// A nil zone keeps the record's own zone.
func (r Record) TimeLabel(loc *time.Location) string {
	t := r.Time
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimeLayout)
}

// SpeedLabel formats the speed as whole km/h, truncating toward zero.
func (r Record) SpeedLabel() string {
	return fmt.Sprintf("%d Km/h", int(r.SpeedOrZero()))
}

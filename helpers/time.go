package helpers

import "time"

// EventZone is the fixed reference offset every persisted timestamp is
// normalized to, regardless of the timezone a vendor request arrived in.
var EventZone = time.FixedZone("GMT+8", 8*3600)

// EventTime converts a vendor-supplied epoch into EventZone. Vendors disagree
// on units, so both seconds and milliseconds are accepted.
func EventTime(epoch int64) time.Time {
	if epoch <= 0 {
		return time.Now().In(EventZone)
	}
	if epoch > 1_000_000_000_000 { // milliseconds
		return time.UnixMilli(epoch).In(EventZone)
	}
	return time.Unix(epoch, 0).In(EventZone)
}

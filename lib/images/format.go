package images

import (
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
)

const (
	// createdLayout is the engine's creation date without its offset marker.
	createdLayout = "2006-01-02T15:04:05"

	// DisplayLayout is how creation dates are shown on the dashboard.
	DisplayLayout = "2006-01-02 15:04:05"
)

// ParseCreated converts an engine creation date such as "2023-01-01T00:00:00Z"
// or "2023-01-01T00:00:00.123456789+02:00" into "2023-01-01 00:00:00".
// Whatever follows the seconds field is ignored; the wall clock is kept as-is.
func ParseCreated(raw string) (string, error) {
	if len(raw) < len(createdLayout) {
		return "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
	}
	t, err := time.Parse(createdLayout, raw[:len(createdLayout)])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
	}
	return t.Format(DisplayLayout), nil
}

// FormatMB renders a byte count in megabytes with two decimals,
// e.g. 2097152 -> "2.00 MB" (or "2.00" without the unit).
func FormatMB(bytes int64, withUnit bool) string {
	var mb float64
	if bytes < 0 {
		mb = -datasize.ByteSize(-bytes).MBytes()
	} else {
		mb = datasize.ByteSize(bytes).MBytes()
	}
	if withUnit {
		return fmt.Sprintf("%.2f MB", mb)
	}
	return fmt.Sprintf("%.2f", mb)
}

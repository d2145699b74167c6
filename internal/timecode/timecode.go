// Package timecode turns a clip's EXIF capture timestamp into the corrected
// clock, date, and combined stamp that the output metadata is written with.
package timecode

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts for the EXIF input and the various output conventions.
const (
	exifDateLayout = "2006:01:02"
	clockLayout    = "15:04:05"
	dateLayout     = "2006-01-02"
	creationLayout = "2006-01-02 15:04:05"
	setFileLayout  = "01/02/2006 15:04:05"
	maxOffset      = 24 * time.Hour
)

var (
	// ErrMalformedTimestamp reports a capture value that is not
	// "YYYY:MM:DD HH:MM:SS[.ffffff]".
	ErrMalformedTimestamp = errors.New("malformed capture timestamp")
	// ErrOffsetRange reports an offset outside [0, 24h).
	ErrOffsetRange = errors.New("offset out of range")
)

// Correction is the result of shifting one capture timestamp.
type Correction struct {
	Capture    time.Time // Parsed capture time, sub-seconds dropped.
	Stamp      time.Time // Capture minus offset.
	Clock      string    // Stamp as HH:MM:SS.
	Date       string    // Stamp as YYYY-MM-DD.
	RolledBack bool      // The offset crossed midnight; Date is the previous day.
}

// Parse reads an EXIF date-time such as "2014:05:01 19:58:07.500000".
// The sub-second fraction and any trailing zone designator are discarded;
// the result is a wall-clock time in UTC.
func Parse(value string) (time.Time, error) {
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}

	clock := strings.SplitN(parts[1], ".", 2)[0]
	clock = trimZone(clock)

	date, err := time.Parse(exifDateLayout, parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrMalformedTimestamp, parts[0], err)
	}
	tod, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q: %v", ErrMalformedTimestamp, parts[1], err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC), nil
}

// trimZone drops a "Z", "+hh:mm" or "-hh:mm" suffix from an HH:MM:SS clock.
func trimZone(clock string) string {
	if len(clock) > 8 {
		switch clock[8] {
		case 'Z', '+', '-':
			return clock[:8]
		}
	}
	return clock
}

// Correct parses value and subtracts offset. When the subtraction crosses
// midnight the clock wraps and the date moves back one day.
func Correct(value string, offset time.Duration) (Correction, error) {
	if offset < 0 || offset >= maxOffset {
		return Correction{}, fmt.Errorf("%w: %s", ErrOffsetRange, offset)
	}
	capture, err := Parse(value)
	if err != nil {
		return Correction{}, err
	}

	stamp := capture.Add(-offset)
	return Correction{
		Capture:    capture,
		Stamp:      stamp,
		Clock:      stamp.Format(clockLayout),
		Date:       stamp.Format(dateLayout),
		RolledBack: stamp.YearDay() != capture.YearDay() || stamp.Year() != capture.Year(),
	}, nil
}

// Timecode returns the container timecode "HH:MM:SS:FF" with frames as the
// frame field.
func (c Correction) Timecode(frames string) string {
	return c.Clock + ":" + frames
}

// CreationTime returns "YYYY-MM-DD HH:MM:SS" for ffmpeg's creation_time.
func (c Correction) CreationTime() string {
	return c.Stamp.Format(creationLayout)
}

// SetFileStamp returns the stamp in SetFile's "MM/DD/YYYY HH:MM:SS" form.
func (c Correction) SetFileStamp() string {
	return c.Stamp.Format(setFileLayout)
}

// TouchStamp returns the stamp in the "YYYY-MM-DD HH:MM:SS" form accepted
// by touch -d.
func (c Correction) TouchStamp() string {
	return c.Stamp.Format(creationLayout)
}

package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("invalid time format")

// Go's hour field accepts one or two digits, so these two layouts cover
// H:mm, HH:mm, H:mm:ss and HH:mm:ss in that order.
var layouts = []string{
	"15:04",
	"15:04:05",
}

// time.Parse takes a fractional second after "05" even when the layout has
// none, so the shape is checked before any layout is tried.
var clockShape = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// TimeOfDay is a wall-clock time without date or zone, stored as seconds since midnight.
type TimeOfDay struct {
	seconds int
}

// New builds a TimeOfDay from its clock fields.
func New(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d:%02d out of range", ErrInvalidTimeFormat, hour, minute, second)
	}
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}, nil
}

// MustNew is New for compile-time constants; it panics on out-of-range fields.
func MustNew(hour, minute, second int) TimeOfDay {
	t, err := New(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse normalizes a free-form punch string and returns the first layout that matches.
func Parse(raw string) (TimeOfDay, error) {
	clean := Sanitize(raw)
	if !clockShape.MatchString(clean) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, clean)
		if err != nil {
			continue
		}
		return TimeOfDay{seconds: parsed.Hour()*3600 + parsed.Minute()*60 + parsed.Second()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
}

// Sanitize drops bytes outside printable ASCII and quote characters, then trims spaces.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < 0x20 || c > 0x7E || c == '"' {
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

func (t TimeOfDay) Hour() int   { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return t.seconds % 3600 / 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// Minutes returns whole minutes since midnight; seconds are truncated.
func (t TimeOfDay) Minutes() int {
	return t.seconds / 60
}

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.seconds < u.seconds }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.seconds > u.seconds }
func (t TimeOfDay) Equal(u TimeOfDay) bool  { return t.seconds == u.seconds }

// Sub returns the duration t-u, negative when t is earlier than u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t.seconds-u.seconds) * time.Second
}

// String renders HH:mm, or HH:mm:ss when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText lets TimeOfDay travel as "HH:mm" in JSON payloads.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

package timeofday

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw        string
		wantHour   int
		wantMinute int
		wantSecond int
	}{
		{"8:05", 8, 5, 0},
		{"08:05", 8, 5, 0},
		{"8:05:09", 8, 5, 9},
		{"17:30:00", 17, 30, 0},
		{"0:00", 0, 0, 0},
		{"23:59:59", 23, 59, 59},
		{"  08:15  ", 8, 15, 0},
		{"\"08:15\"", 8, 15, 0},
		{"\ufeff08:15\r\n", 8, 15, 0},
		{"\t9:00", 9, 0, 0},
	}
	for _, c := range cases {
		got, err := Parse(c.raw)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", c.raw, err)
			continue
		}
		if got.Hour() != c.wantHour || got.Minute() != c.wantMinute || got.Second() != c.wantSecond {
			t.Errorf("Parse(%q) = %s, want %02d:%02d:%02d", c.raw, got, c.wantHour, c.wantMinute, c.wantSecond)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"abc",
		"24:00",
		"8:60",
		"8:5",
		"08:15:60",
		"08:15 AM",
		"2024-01-01 08:15",
		"-1:00",
		"08:15:30.123",
		"08:15:00,5",
		"108:15",
	}
	for _, raw := range invalid {
		_, err := Parse(raw)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", raw)
			continue
		}
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidTimeFormat", raw, err)
		}
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"08:15", "08:15"},
		{" 08:15 ", "08:15"},
		{"\"08:15\"", "08:15"},
		{"08:\x0015", "08:15"},
		{"é08:15", "08:15"},
		{"", ""},
	}
	for _, c := range cases {
		got := Sanitize(c.input)
		if got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestTimeOfDay_Arithmetic(t *testing.T) {
	login := MustNew(8, 30, 45)
	logout := MustNew(17, 0, 0)

	assert.Equal(t, 8*60+30, login.Minutes())
	assert.True(t, login.Before(logout))
	assert.True(t, logout.After(login))
	assert.Equal(t, 8*time.Hour+29*time.Minute+15*time.Second, logout.Sub(login))
	assert.Equal(t, "08:30:45", login.String())
	assert.Equal(t, "17:00", logout.String())
}

func TestNew_OutOfRange(t *testing.T) {
	_, err := New(24, 0, 0)
	require.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = New(0, -1, 0)
	require.ErrorIs(t, err, ErrInvalidTimeFormat)

	assert.Panics(t, func() { MustNew(0, 0, 60) })
}

func TestTimeOfDay_JSON(t *testing.T) {
	var payload struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"7:45"}`), &payload))
	assert.Equal(t, MustNew(7, 45, 0), payload.At)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"07:45"}`, string(out))

	err = json.Unmarshal([]byte(`{"at":"late"}`), &payload)
	assert.Error(t, err)
}

package lib

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAdd(t *testing.T) {
	s := NewSet("b", "a")
	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("z"))
}

func TestSetByValueSharesData(t *testing.T) {
	s := NewSet[int]()
	cp := s
	cp.Add(4)
	assert.True(t, s.Contains(4))
	assert.False(t, s.Add(4))
}

func TestUniqueNamer(t *testing.T) {
	u := NewUniqueNamer()
	got := []string{
		u.Name("B"),
		u.Name("B (2)"),
		u.Name("B"),
		u.Name("A"),
		u.Name("B"),
	}
	assert.Equal(t, []string{"B", "B (2)", "B (3)", "A", "B (4)"}, got)
}

func TestDurationUnmarshal(t *testing.T) {
	var d struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "1500ms", "b": 2000000000}`), &d))
	assert.Equal(t, 1500*time.Millisecond, d.A.Duration)
	assert.Equal(t, 2*time.Second, d.B.Duration)

	var txt Duration
	require.NoError(t, txt.UnmarshalText([]byte("3m")))
	assert.Equal(t, 3*time.Minute, txt.Duration)
	assert.Error(t, txt.UnmarshalText([]byte("soon")))

	out, err := DurationFrom(time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1s", string(out))
}

func TestParseSLogLevel(t *testing.T) {
	level, err := ParseSLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseSLogLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseSLogLevel("chatty")
	assert.Error(t, err)
}

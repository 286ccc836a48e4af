package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache[[]string](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("jaipur", []string{"Amber Fort"}, time.Minute)
	got, ok := c.Get("jaipur")
	require.True(t, ok)
	assert.Equal(t, []string{"Amber Fort"}, got)
	assert.Equal(t, 1, c.Len())
}

func TestTTLCache_Expires(t *testing.T) {
	c := NewTTLCache[string](time.Minute)

	c.Set("k", "v", 20*time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[int](time.Minute)
	c.Set("k", 7, 0)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "jaipur::attraction::12", Key(" Jaipur ", "attraction", "12"))
	assert.Equal(t, Key("Red Fort"), Key("red fort "))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSlice(t *testing.T) {
	assert.Empty(t, parseSlice(""))
	assert.Equal(t, []string{"http://localhost:3000"}, parseSlice("http://localhost:3000"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		parseSlice("https://a.example, https://b.example"),
	)
	assert.Equal(t, []string{"https://a.example"}, parseSlice("https://a.example,,"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, parseDuration("30m", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, parseInt("3", 0))
	assert.Equal(t, 7, parseInt("three", 7))
}

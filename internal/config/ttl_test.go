package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLPolicySwapsAtomically(t *testing.T) {
	p := NewTTLPolicy(TTLPolicyConfig{
		List:    Duration(10 * time.Minute),
		Detail:  Duration(10 * time.Minute),
		Monthly: Duration(30 * time.Minute),
		Yearly:  Duration(2 * time.Hour),
	})

	assert.Equal(t, 10*time.Minute, p.List())
	assert.Equal(t, 2*time.Hour, p.Yearly())

	p.Store(TTLPolicyConfig{
		List:    Duration(time.Minute),
		Detail:  Duration(5 * time.Minute),
		Monthly: Duration(15 * time.Minute),
		Yearly:  Duration(time.Hour),
	})

	assert.Equal(t, time.Minute, p.List())
	assert.Equal(t, 5*time.Minute, p.Detail())
	assert.Equal(t, 15*time.Minute, p.Monthly())
	assert.Equal(t, time.Hour, p.Yearly())

	snap := p.Snapshot()
	assert.Equal(t, Duration(time.Minute), snap.List)
}

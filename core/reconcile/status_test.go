package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name       string
		registered int64
		expected   int
		want       State
	}{
		{"Nothing scanned", 0, 2, StatePending},
		{"One short", 1, 2, StatePending},
		{"Exact", 2, 2, StateComplete},
		{"One over", 3, 2, StateOver},
		{"Zero plan zero scans", 0, 0, StateComplete},
		{"Zero plan with scans", 1, 0, StateOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFor(tt.registered, tt.expected))
		})
	}
}

func TestCompletionPercent(t *testing.T) {
	assert.Equal(t, float64(50), CompletionPercent(1, 2))
	assert.Equal(t, float64(100), CompletionPercent(2, 2))
	assert.Equal(t, float64(150), CompletionPercent(3, 2))
	// Zero expected quantity must not divide by zero.
	assert.Equal(t, float64(100), CompletionPercent(0, 0))
	assert.Equal(t, float64(100), CompletionPercent(5, 0))
}

func TestConfig_Policy(t *testing.T) {
	assert.Equal(t, PolicyPermissive, Config{}.Policy())
	assert.Equal(t, PolicyPermissive, Config{MissingBarcode: "permissive"}.Policy())
	assert.Equal(t, PolicyStrict, Config{MissingBarcode: "strict"}.Policy())
	assert.Equal(t, PolicyPermissive, Config{MissingBarcode: "bogus"}.Policy())
}

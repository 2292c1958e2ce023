package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevel_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		level    RiskLevel
		expected bool
	}{
		{"safe", RiskSafe, true},
		{"moderate", RiskModerate, true},
		{"destructive", RiskDestructive, true},
		{"empty", RiskLevel(""), false},
		{"unknown value", RiskLevel("catastrophic"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.IsValid())
		})
	}
}

func TestParameterType_IsValid(t *testing.T) {
	valid := []ParameterType{
		TypeString, TypeNumber, TypeBoolean, TypeObject,
		TypeArray, TypeFunction, TypeAny, TypeUnknown,
	}
	for _, pt := range valid {
		assert.True(t, pt.IsValid(), "expected %q to be valid", pt)
	}

	assert.False(t, ParameterType("integer").IsValid())
	assert.False(t, ParameterType("").IsValid())
}

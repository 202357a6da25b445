package axon

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerParser(t *testing.T) {
	p := IntegerParser{}

	tests := []struct {
		name     string
		input    any
		config   *IntegerConfig
		expected int
		fail     bool
	}{
		{name: "leading zeros", input: "0007", expected: 7},
		{name: "fraction ignored in strings", input: "-004.6", expected: -4},
		{name: "double sign", input: "--1", fail: true},
		{name: "empty string", input: "", fail: true},
		{name: "letters", input: "abc", fail: true},
		{name: "trailing garbage ignored", input: "12px", expected: 12},
		{name: "leading whitespace", input: "  42", expected: 42},
		{name: "explicit plus", input: "+3", expected: 3},
		{name: "sign only", input: "-", fail: true},
		{name: "overflow", input: "99999999999999999999", fail: true},
		{name: "strings disabled", input: "5", config: &IntegerConfig{}, fail: true},
		{name: "go int", input: 9, expected: 9},
		{name: "int64", input: int64(-9), expected: -9},
		{name: "uint8", input: uint8(200), expected: 200},
		{name: "uint64 overflow", input: uint64(math.MaxUint64), fail: true},
		{name: "whole float", input: float64(30), expected: 30},
		{name: "fractional float rejected", input: 30.5, fail: true},
		{name: "fractional float truncated", input: -30.9, config: &IntegerConfig{ParseFromString: true, ConvertFloatToInteger: true}, expected: -30},
		{name: "NaN", input: math.NaN(), config: &IntegerConfig{ConvertFloatToInteger: true}, fail: true},
		{name: "infinity", input: math.Inf(1), fail: true},
		{name: "json number", input: json.Number("17"), expected: 17},
		{name: "json number with fraction", input: json.Number("1.5"), fail: true},
		{name: "bool", input: true, fail: true},
		{name: "nil", input: nil, fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := p.DefaultConfig()
			if tt.config != nil {
				config = *tt.config
			}
			got, ok := p.Parse(tt.input, config).Get()
			if tt.fail {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIntegerParser_DefaultConfig(t *testing.T) {
	config := IntegerParser{}.DefaultConfig()
	assert.True(t, config.ParseFromString)
	assert.False(t, config.ConvertFloatToInteger)
}

func TestStringParser(t *testing.T) {
	p := StringParser{}

	got, ok := p.Parse("  Left trimming", p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, "Left trimming", got)

	got, ok = p.Parse("  kept  ", StringConfig{TrimString: false}).Get()
	require.True(t, ok)
	assert.Equal(t, "  kept  ", got)

	got, ok = p.Parse("", p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, "", got)

	assert.False(t, p.Parse(12, p.DefaultConfig()).Ok())
	assert.False(t, p.Parse(nil, p.DefaultConfig()).Ok())
}

func TestBooleanParser(t *testing.T) {
	p := BooleanParser{}

	tests := []struct {
		input    any
		expected bool
		fail     bool
	}{
		{input: "on", expected: true},
		{input: "true", expected: true},
		{input: "1", expected: true},
		{input: "0", expected: false},
		{input: "false", expected: false},
		{input: "off", expected: false},
		{input: true, expected: true},
		{input: false, expected: false},
		{input: "2", fail: true},
		{input: "", fail: true},
		{input: "TRUE", fail: true},
		{input: " on", fail: true},
		{input: 1, fail: true},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.input, p.DefaultConfig()).Get()
		if tt.fail {
			assert.False(t, ok, "input %#v", tt.input)
			continue
		}
		assert.True(t, ok, "input %#v", tt.input)
		assert.Equal(t, tt.expected, got, "input %#v", tt.input)
	}
}

func TestFloatParser(t *testing.T) {
	p := FloatParser{}

	got, ok := p.Parse("3.25", p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, 3.25, got)

	got, ok = p.Parse(7, p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, 7.0, got)

	got, ok = p.Parse(json.Number("-1e3"), p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, -1000.0, got)

	assert.False(t, p.Parse("NaN", p.DefaultConfig()).Ok())
	assert.False(t, p.Parse("Inf", p.DefaultConfig()).Ok())
	assert.False(t, p.Parse("1.2.3", p.DefaultConfig()).Ok())
	assert.False(t, p.Parse(true, p.DefaultConfig()).Ok())
}

func TestUUIDParser(t *testing.T) {
	p := UUIDParser{}
	id := uuid.New()

	got, ok := p.Parse(id.String(), p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, id, got)

	got, ok = p.Parse(id, p.DefaultConfig()).Get()
	require.True(t, ok)
	assert.Equal(t, id, got)

	assert.False(t, p.Parse("not-a-uuid", p.DefaultConfig()).Ok())
	assert.False(t, p.Parse(42, p.DefaultConfig()).Ok())
}

func TestResolveTypeAlias(t *testing.T) {
	assert.Equal(t, TypeUUID, ResolveTypeAlias("UUID"))
	assert.Equal(t, TypeFloat, ResolveTypeAlias("double"))
	assert.Equal(t, TypeInteger, ResolveTypeAlias("integer"))
	assert.Equal(t, TypeBoolean, ResolveTypeAlias("boolean"))
	assert.Equal(t, TypeName("CreateUser"), ResolveTypeAlias("CreateUser"))
}

func TestIsReservedType(t *testing.T) {
	for _, name := range []TypeName{"int", "string", "bool", "float64", "uuid.UUID", "object", "array", "UUID", "float"} {
		assert.True(t, IsReservedType(name), "%s should be reserved", name)
	}
	assert.False(t, IsReservedType("CreateUser"))
	assert.False(t, IsReservedType("Int"))
}

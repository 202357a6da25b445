package axon

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Built-in type names. These, their aliases, and the container names below
// cannot be registered by users.
const (
	TypeInteger TypeName = "int"
	TypeString  TypeName = "string"
	TypeBoolean TypeName = "bool"
	TypeFloat   TypeName = "float64"
	TypeUUID    TypeName = "uuid.UUID"

	// Reserved container names. No parser is registered for them.
	TypeObject TypeName = "object"
	TypeArray  TypeName = "array"
)

// ParserAliases maps convenient aliases to their full type names
var ParserAliases = map[TypeName]TypeName{
	"UUID":    TypeUUID,
	"float":   TypeFloat,
	"double":  TypeFloat,
	"integer": TypeInteger,
	"boolean": TypeBoolean,
}

// ResolveTypeAlias resolves a type alias to its actual type name
func ResolveTypeAlias(name TypeName) TypeName {
	if actual, isAlias := ParserAliases[name]; isAlias {
		return actual
	}
	return name
}

// IsReservedType reports whether name is a built-in, an alias of one, or a
// reserved container name
func IsReservedType(name TypeName) bool {
	if _, isAlias := ParserAliases[name]; isAlias {
		return true
	}
	switch name {
	case TypeInteger, TypeString, TypeBoolean, TypeFloat, TypeUUID, TypeObject, TypeArray:
		return true
	}
	return false
}

func builtinConverters() map[TypeName]Converter {
	return map[TypeName]Converter{
		TypeInteger: Bind[int, IntegerConfig](IntegerParser{}),
		TypeString:  Bind[string, StringConfig](StringParser{}),
		TypeBoolean: Bind[bool, struct{}](BooleanParser{}),
		TypeFloat:   Bind[float64, struct{}](FloatParser{}),
		TypeUUID:    Bind[uuid.UUID, struct{}](UUIDParser{}),
	}
}

// IntegerConfig configures IntegerParser
type IntegerConfig struct {
	// ParseFromString allows string input (default true)
	ParseFromString bool
	// ConvertFloatToInteger truncates numeric input with a fractional part
	// instead of rejecting it (default false)
	ConvertFloatToInteger bool
}

// IntegerParser converts strings and numbers to int
type IntegerParser struct{}

// DefaultConfig returns the default integer configuration
func (IntegerParser) DefaultConfig() IntegerConfig {
	return IntegerConfig{ParseFromString: true}
}

// Parse converts value to an int. Strings use leading-integer semantics: the
// longest signed run of decimal digits after leading whitespace is taken and
// the rest ignored, so "-004.6" is -4 and "12px" is 12.
func (IntegerParser) Parse(value any, config IntegerConfig) Result[int] {
	switch v := value.(type) {
	case string:
		if !config.ParseFromString {
			return Failure[int]()
		}
		return parseLeadingInt(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return intFromInt64(i)
		}
		f, err := v.Float64()
		if err != nil {
			return Failure[int]()
		}
		return intFromFloat(f, config.ConvertFloatToInteger)
	case int:
		return Success(v)
	case int8:
		return Success(int(v))
	case int16:
		return Success(int(v))
	case int32:
		return Success(int(v))
	case int64:
		return intFromInt64(v)
	case uint:
		return intFromUint64(uint64(v))
	case uint8:
		return Success(int(v))
	case uint16:
		return Success(int(v))
	case uint32:
		return intFromUint64(uint64(v))
	case uint64:
		return intFromUint64(v)
	case float32:
		return intFromFloat(float64(v), config.ConvertFloatToInteger)
	case float64:
		return intFromFloat(v, config.ConvertFloatToInteger)
	}
	return Failure[int]()
}

func parseLeadingInt(s string) Result[int] {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return Failure[int]()
	}
	n, err := strconv.ParseInt(s[:end], 10, strconv.IntSize)
	if err != nil {
		return Failure[int]()
	}
	return Success(int(n))
}

func intFromInt64(i int64) Result[int] {
	if i < math.MinInt || i > math.MaxInt {
		return Failure[int]()
	}
	return Success(int(i))
}

func intFromUint64(u uint64) Result[int] {
	if u > math.MaxInt {
		return Failure[int]()
	}
	return Success(int(u))
}

func intFromFloat(f float64, truncate bool) Result[int] {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Failure[int]()
	}
	t := math.Trunc(f)
	if t != f && !truncate {
		return Failure[int]()
	}
	if t < math.MinInt || t >= math.MaxInt {
		return Failure[int]()
	}
	return Success(int(t))
}

// StringConfig configures StringParser
type StringConfig struct {
	// TrimString removes leading and trailing whitespace (default true)
	TrimString bool
}

// StringParser accepts string values only
type StringParser struct{}

// DefaultConfig returns the default string configuration
func (StringParser) DefaultConfig() StringConfig {
	return StringConfig{TrimString: true}
}

// Parse returns value if it is a string, trimmed when configured
func (StringParser) Parse(value any, config StringConfig) Result[string] {
	s, ok := value.(string)
	if !ok {
		return Failure[string]()
	}
	if config.TrimString {
		s = strings.TrimSpace(s)
	}
	return Success(s)
}

// BooleanParser recognises exactly "1", "true", "on" and "0", "false", "off".
// Matching is case sensitive. A Go bool, as decoded from a JSON body, is
// accepted unchanged.
type BooleanParser struct{}

// DefaultConfig returns the empty configuration
func (BooleanParser) DefaultConfig() struct{} { return struct{}{} }

// Parse converts value to a bool
func (BooleanParser) Parse(value any, _ struct{}) Result[bool] {
	switch v := value.(type) {
	case bool:
		return Success(v)
	case string:
		switch v {
		case "1", "true", "on":
			return Success(true)
		case "0", "false", "off":
			return Success(false)
		}
	}
	return Failure[bool]()
}

// FloatParser converts strings and numbers to float64
type FloatParser struct{}

// DefaultConfig returns the empty configuration
func (FloatParser) DefaultConfig() struct{} { return struct{}{} }

// Parse converts value to a finite float64
func (FloatParser) Parse(value any, _ struct{}) Result[float64] {
	var f float64
	switch v := value.(type) {
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Failure[float64]()
		}
		f = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return Failure[float64]()
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	default:
		return Failure[float64]()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Failure[float64]()
	}
	return Success(f)
}

// UUIDParser converts strings to uuid.UUID
type UUIDParser struct{}

// DefaultConfig returns the empty configuration
func (UUIDParser) DefaultConfig() struct{} { return struct{}{} }

// Parse converts value to a uuid.UUID
func (UUIDParser) Parse(value any, _ struct{}) Result[uuid.UUID] {
	switch v := value.(type) {
	case uuid.UUID:
		return Success(v)
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return Failure[uuid.UUID]()
		}
		return Success(id)
	}
	return Failure[uuid.UUID]()
}

package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"assay/internal/api"
)

// evalRule evaluates a single manual rule string against a value.
// It returns (message, false) when the check fails and never panics:
// a malformed rule is itself a validation failure for the parameter.
//
// Supported rules: nonEmpty, min:<n>, max:<n>, minLength:<n>,
// maxLength:<n>, pattern:<regexp>, oneOf:<a|b|c>, startsWith:<s>,
// endsWith:<s>, context:<capability>.
func evalRule(rule string, value interface{}, execCtx api.ExecutionContext) (string, bool) {
	name, arg, hasArg := strings.Cut(rule, ":")

	switch name {
	case "nonEmpty":
		return evalNonEmpty(value)
	case "min", "max":
		return evalNumericBound(name, arg, hasArg, value)
	case "minLength", "maxLength":
		return evalLengthBound(name, arg, hasArg, value)
	case "pattern":
		return evalPattern(arg, hasArg, value)
	case "oneOf":
		return evalOneOf(arg, hasArg, value)
	case "startsWith", "endsWith":
		return evalAffix(name, arg, hasArg, value)
	case "context":
		return evalContext(arg, hasArg, execCtx)
	default:
		return fmt.Sprintf("malformed rule %q: unknown rule name", rule), false
	}
}

func evalNonEmpty(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "must not be empty", false
	case string:
		if strings.TrimSpace(v) == "" {
			return "must not be empty", false
		}
	case []interface{}:
		if len(v) == 0 {
			return "must not be empty", false
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return "must not be empty", false
		}
	}
	return "", true
}

func evalNumericBound(name, arg string, hasArg bool, value interface{}) (string, bool) {
	if !hasArg {
		return fmt.Sprintf("malformed rule %q: missing bound", name), false
	}
	bound, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Sprintf("malformed rule %q: bound %q is not a number", name, arg), false
	}

	num, ok := toFloat(value)
	if !ok {
		return fmt.Sprintf("%s rule applies to numbers, got %T", name, value), false
	}

	if name == "min" && num < bound {
		return fmt.Sprintf("must be at least %s", arg), false
	}
	if name == "max" && num > bound {
		return fmt.Sprintf("must be at most %s", arg), false
	}
	return "", true
}

func evalLengthBound(name, arg string, hasArg bool, value interface{}) (string, bool) {
	if !hasArg {
		return fmt.Sprintf("malformed rule %q: missing bound", name), false
	}
	bound, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Sprintf("malformed rule %q: bound %q is not an integer", name, arg), false
	}

	var length int
	switch v := value.(type) {
	case string:
		length = len(v)
	case []interface{}:
		length = len(v)
	default:
		return fmt.Sprintf("%s rule applies to strings and arrays, got %T", name, value), false
	}

	if name == "minLength" && length < bound {
		return fmt.Sprintf("length must be at least %d", bound), false
	}
	if name == "maxLength" && length > bound {
		return fmt.Sprintf("length must be at most %d", bound), false
	}
	return "", true
}

func evalPattern(arg string, hasArg bool, value interface{}) (string, bool) {
	if !hasArg || arg == "" {
		return "malformed rule \"pattern\": missing expression", false
	}

	re, err := regexp.Compile(arg)
	if err != nil {
		return fmt.Sprintf("malformed rule \"pattern\": %v", err), false
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("pattern rule applies to strings, got %T", value), false
	}

	if !re.MatchString(s) {
		return fmt.Sprintf("must match pattern %s", arg), false
	}
	return "", true
}

func evalOneOf(arg string, hasArg bool, value interface{}) (string, bool) {
	if !hasArg || arg == "" {
		return "malformed rule \"oneOf\": missing options", false
	}

	options := strings.Split(arg, "|")
	rendered := fmt.Sprint(value)
	for _, opt := range options {
		if rendered == opt {
			return "", true
		}
	}
	return fmt.Sprintf("must be one of: %s", strings.Join(options, ", ")), false
}

func evalAffix(name, arg string, hasArg bool, value interface{}) (string, bool) {
	if !hasArg {
		return fmt.Sprintf("malformed rule %q: missing text", name), false
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%s rule applies to strings, got %T", name, value), false
	}

	if name == "startsWith" && !strings.HasPrefix(s, arg) {
		return fmt.Sprintf("must start with %q", arg), false
	}
	if name == "endsWith" && !strings.HasSuffix(s, arg) {
		return fmt.Sprintf("must end with %q", arg), false
	}
	return "", true
}

func evalContext(arg string, hasArg bool, execCtx api.ExecutionContext) (string, bool) {
	if !hasArg || arg == "" {
		return "malformed rule \"context\": missing capability name", false
	}

	if !execCtx.Capabilities[arg] {
		return fmt.Sprintf("requires capability %q which is not available", arg), false
	}
	return "", true
}

// toFloat converts any numeric representation to float64 for comparisons.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

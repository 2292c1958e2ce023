package validate

import (
	"fmt"
	"sort"

	"assay/internal/api"
)

// Validate checks proposed arguments against a merged signature.
// Every check runs; the result aggregates all failures instead of stopping
// at the first one. Validate performs no I/O and never executes anything.
//
// Per parameter it checks required presence, type compatibility, and the
// manual rule strings attached to the parameter. Argument keys the
// signature does not declare each produce one error, without suppressing
// the other checks.
//
// A nil signature accepts only an empty argument set: with nothing
// researched, any provided argument is an unknown key.
func Validate(sig *api.Signature, args map[string]interface{}, execCtx api.ExecutionContext) api.ValidationResult {
	var errs []api.ValidationError

	declared := make(map[string]api.Parameter)
	if sig != nil {
		for _, p := range sig.Parameters {
			declared[p.Name] = p
		}

		for _, param := range sig.Parameters {
			value, present := args[param.Name]

			if !present {
				if param.Required && param.Default == nil {
					errs = append(errs, api.ValidationError{
						Parameter: param.Name,
						Message:   "required parameter is missing",
					})
				}
				continue
			}

			if msg, ok := checkType(param.Type, value); !ok {
				errs = append(errs, api.ValidationError{
					Parameter: param.Name,
					Message:   msg,
				})
			}

			for _, rule := range param.Rules {
				if msg, ok := evalRule(rule, value, execCtx); !ok {
					errs = append(errs, api.ValidationError{
						Parameter: param.Name,
						Message:   msg,
					})
				}
			}
		}
	}

	// Unknown keys get one error each, in a stable order.
	var unknown []string
	for name := range args {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, api.ValidationError{
			Parameter: name,
			Message:   "unknown parameter",
		})
	}

	return api.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// checkType verifies structural type compatibility. "any" accepts every
// value; "unknown" accepts every value with no further structural checks.
func checkType(paramType api.ParameterType, value interface{}) (string, bool) {
	switch paramType {
	case api.TypeAny, api.TypeUnknown, "":
		return "", true
	case api.TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected string, got %T", value), false
		}
	case api.TypeNumber:
		if !isNumber(value) {
			return fmt.Sprintf("expected number, got %T", value), false
		}
	case api.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected boolean, got %T", value), false
		}
	case api.TypeObject:
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Sprintf("expected object, got %T", value), false
		}
	case api.TypeArray:
		if _, ok := value.([]interface{}); !ok {
			return fmt.Sprintf("expected array, got %T", value), false
		}
	case api.TypeFunction:
		// Function-typed parameters cannot cross the wire; any value
		// provided for one is a caller mistake.
		return "function-typed parameter cannot be supplied remotely", false
	default:
		return fmt.Sprintf("unsupported parameter type %q", paramType), false
	}
	return "", true
}

// isNumber reports whether the value is any integer or float type.
// Arguments arrive from JSON (float64), YAML (int), and Go callers, so
// every numeric representation counts as a number.
func isNumber(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

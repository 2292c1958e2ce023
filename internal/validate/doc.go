// Package validate checks proposed arguments against merged operation
// signatures before anything is executed.
//
// Validation aggregates every failure instead of stopping at the first
// one: required presence, structural type compatibility, manual rule
// predicates, and unknown argument keys all report independently, so a
// caller sees the complete picture in a single pass.
//
// # Rule grammar
//
// Manual entries attach rule strings to parameters. Each rule is a
// predicate over the supplied value:
//
//	nonEmpty              value is not nil/blank/empty
//	min:<n>  max:<n>      numeric bounds
//	minLength:<n>         string/array length bounds
//	maxLength:<n>
//	pattern:<regexp>      string matches the expression
//	oneOf:<a|b|c>         rendered value is one of the options
//	startsWith:<s>        string affix checks
//	endsWith:<s>
//	context:<capability>  execution context provides the capability
//
// A malformed rule never panics; it degrades to a validation error for
// its parameter so research mistakes surface at validation time.
//
// Type compatibility is structural: objects are maps, arrays are slices,
// "number" accepts ints and floats alike, "any" accepts everything, and
// "unknown" accepts everything without structural checks (explicit rules
// still run). Function-typed parameters reject every supplied value since
// callbacks cannot cross the wire.
package validate

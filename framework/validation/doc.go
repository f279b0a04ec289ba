// Package validation checks flat string settings against pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "log_level": "verbose",
//	}, validation.Rules{
//	    "log_level": "required|in:debug,info,warn,error",
//	})
//
//	if err := v.Err(); err != nil {
//	    // err is *validation.Errors: {"errors": {"log_level": ["The selected log_level is invalid."]}}
//	}
//
// # Available Rules
//
//   - required: value must be non-blank
//   - nullable: an empty value skips the remaining rules
//   - integer: parses as an int
//   - boolean: parses with strconv.ParseBool
//   - between:a,b: integer in [a, b]
//   - in:a,b,c: one of the listed values
//   - not_in:a,b,c: none of the listed values
//   - alpha_dash: letters, digits, dashes and underscores
//   - regex:pattern: matches the pattern
//   - address: host:port with a numeric port
//
// Validation stops at the first failing rule of a field. Unknown rule names
// are reported as errors rather than ignored.
package validation

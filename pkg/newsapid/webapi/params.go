package webapi

import (
	"strconv"
	"strings"
)

// Query parameter parsers for echo's ValueBinder.CustomFunc. A parameter that
// is present but empty is handed to them as [""], so an empty count or exact
// is rejected rather than silently defaulted.

func intParam(name string, dest *int) func(values []string) []error {
	return func(values []string) []error {
		v, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return []error{&ValidationDetail{
				Loc:  []string{"query", name},
				Msg:  "Input should be a valid integer, unable to parse string as an integer",
				Type: "int_parsing",
			}}
		}

		*dest = v
		return nil
	}
}

func boolParam(name string, dest *bool) func(values []string) []error {
	return func(values []string) []error {
		switch strings.ToLower(strings.TrimSpace(values[0])) {
		case "1", "on", "t", "true", "y", "yes":
			*dest = true
		case "0", "off", "f", "false", "n", "no":
			*dest = false
		default:
			return []error{&ValidationDetail{
				Loc:  []string{"query", name},
				Msg:  "Input should be a valid boolean, unable to interpret input",
				Type: "bool_parsing",
			}}
		}

		return nil
	}
}

// stringParam takes the value as is, including the empty string.
func stringParam(dest *string) func(values []string) []error {
	return func(values []string) []error {
		*dest = values[0]
		return nil
	}
}

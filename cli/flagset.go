package cli

// FlagSet is a map-backed implementation of Flags. It allows one to drive an
// action outside of an application, typically in tests where the flag values
// are known up front.
//
// - implements cli.Flags
type FlagSet map[string]interface{}

// String implements cli.Flags. It returns the flag value when it holds a
// string, otherwise an empty string.
func (fset FlagSet) String(name string) string {
	value, ok := fset[name].(string)
	if !ok {
		return ""
	}

	return value
}

// StringSlice implements cli.Flags. It returns the flag values when the flag
// holds a list of strings, otherwise nil.
func (fset FlagSet) StringSlice(name string) []string {
	items, ok := fset[name].([]interface{})
	if !ok {
		return nil
	}

	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.(string)
	}

	return values
}

// Path implements cli.Flags. It returns the flag value when it holds a
// string, otherwise an empty string.
func (fset FlagSet) Path(name string) string {
	return fset.String(name)
}

// Int implements cli.Flags. It returns the flag value when it holds an
// integer, otherwise zero. A float without a fractional part is accepted as
// well, as a flag map decoded from JSON stores every number as a float.
func (fset FlagSet) Int(name string) int {
	switch value := fset[name].(type) {
	case int:
		return value
	case float64:
		whole := int(value)
		if float64(whole) == value {
			return whole
		}
	}

	return 0
}

// Bool implements cli.Flags. It returns the flag value when it holds a
// boolean, otherwise false.
func (fset FlagSet) Bool(name string) bool {
	value, ok := fset[name].(bool)
	if !ok {
		return false
	}

	return value
}

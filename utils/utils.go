package utils

// StringIn reports whether s is one of options.
func StringIn(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func IfThenElse(condition bool, then, otherwise string) string {
	if condition {
		return then
	}
	return otherwise
}

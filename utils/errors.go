package utils

// ToMessage converts any error into a readable string, with a named
// fallback when the error carries no usable text. All user-visible failure
// text goes through here.
func ToMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

package query

// ConfigurationError reports conflicting or invalid query options. It
// is raised at query construction, before any evaluation, and is
// never retried: waiting cannot fix a malformed query.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "invalid query options: " + e.Reason
}

func configErr(reason string) error {
	return &ConfigurationError{Reason: reason}
}

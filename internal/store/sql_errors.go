package store

// ErrorClassification tells the repository how to react to a failed
// statement.
type ErrorClassification int

const (
	// NonRetryable failures are returned to the caller unchanged.
	NonRetryable ErrorClassification = iota
	// Retryable failures are transient: a lost connection, a rolled back
	// transaction or a busy database.
	Retryable
	// UniqueViolation marks a write that clashed with a unique index.
	// For the users table this is a taken login.
	UniqueViolation
)

func (c ErrorClassification) String() string {
	switch c {
	case Retryable:
		return "retryable"
	case UniqueViolation:
		return "unique violation"
	default:
		return "non-retryable"
	}
}

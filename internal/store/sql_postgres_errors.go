package store

import "github.com/jackc/pgerrcode"

// postgresClassifications lists the SQLSTATE codes the store reacts to.
// Every other code is NonRetryable.
var postgresClassifications = map[string]ErrorClassification{
	pgerrcode.ConnectionException:    Retryable,
	pgerrcode.ConnectionDoesNotExist: Retryable,
	pgerrcode.ConnectionFailure:      Retryable,
	pgerrcode.TransactionRollback:    Retryable,
	pgerrcode.SerializationFailure:   Retryable,
	pgerrcode.DeadlockDetected:       Retryable,
	pgerrcode.CannotConnectNow:       Retryable,

	pgerrcode.UniqueViolation: UniqueViolation,
}

// PostgresErrorClassifier implements [ErrorClassificator] for errors raised
// by the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify looks up the SQLSTATE of err in postgresClassifications. Errors
// that do not come from PostgreSQL are NonRetryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	if code == "" {
		return NonRetryable
	}

	if class, ok := postgresClassifications[code]; ok {
		return class
	}
	return NonRetryable
}

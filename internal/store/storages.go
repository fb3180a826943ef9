package store

import "github.com/MKhiriev/go-api-dispatch/internal/logger"

// Storages groups every repository the service layer depends on.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages builds the repositories over an open database.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
	}
}

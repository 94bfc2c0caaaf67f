package repository

import (
	"github.com/deppfellow/hbnb-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Storage Storage
}

// NewRepositories picks the storage backend: PostgreSQL when the server
// holds a database pool, process memory otherwise.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB != nil {
		return &Repositories{
			Storage: NewPostgresStorage(s.DB, s.Logger, s.Config.Observability.Logging.SlowQueryThreshold),
		}
	}

	s.Logger.Warn().Msg("using in-memory storage, data is lost on restart")
	return &Repositories{Storage: NewMemoryStorage()}
}

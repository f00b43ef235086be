package library

// Storage backends for users.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMariaDB  = "mariadb"
)

// Config selects the user storage backend. The zero value keeps users in
// memory.
type Config struct {
	// Storage is StorageMemory, StoragePostgres or StorageMariaDB. The SQL
	// backends need the matching postgres.Client or mariadb.Client in the
	// container, usually from postgres.FXModule or mariadb.FXModule.
	Storage string `yaml:"storage"`
}

package mariadb

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// cloneWithTx returns a MariaDB bound to tx. The clone has no lifecycle
// channels, so shutting it down leaves the parent running.
func (m *MariaDB) cloneWithTx(tx *gorm.DB) *MariaDB {
	db := &MariaDB{
		cfg:    m.cfg,
		logger: m.logger,
	}
	db.client.Store(tx)
	return db
}

// Transaction runs fn in a transaction. An error from fn rolls back and is
// returned unchanged.
func (m *MariaDB) Transaction(ctx context.Context, fn func(tx Client) error) error {
	start := time.Now()
	err := m.DB().WithContext(ctx).Transaction(func(txDB *gorm.DB) error {
		return fn(m.cloneWithTx(txDB))
	})
	m.logOperation(ctx, "transaction", &gorm.DB{Error: err}, start)
	return err
}

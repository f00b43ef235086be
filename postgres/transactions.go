package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// cloneWithTx returns a Postgres bound to tx. The clone shares no lifecycle
// channels, so calling GracefulShutdown on it does not stop the parent.
func (p *Postgres) cloneWithTx(tx *gorm.DB) *Postgres {
	pg := &Postgres{
		cfg:    p.cfg,
		logger: p.logger,
	}
	pg.client.Store(tx)
	return pg
}

// Transaction runs fn in a transaction. A non-nil error from fn rolls back
// and is returned unchanged.
//
//	err := pg.Transaction(ctx, func(tx postgres.Client) error {
//		if _, err := tx.Delete(ctx, &userRecord{}, id); err != nil {
//			return err
//		}
//		return tx.Create(ctx, &auditRow)
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx Client) error) error {
	start := time.Now()
	db := p.DB().WithContext(ctx)
	err := db.Transaction(func(txDB *gorm.DB) error {
		return fn(p.cloneWithTx(txDB))
	})
	p.logOperation(ctx, "transaction", &gorm.DB{Error: err}, start)
	return err
}

package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DB returns the current GORM handle. The pointer may be replaced by a
// reconnect, so callers should not cache it across operations.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// logOperation records a finished operation at Debug, or at Warn when it
// failed with anything but a missing record.
func (p *Postgres) logOperation(ctx context.Context, operation string, result *gorm.DB, start time.Time) {
	if p == nil || p.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"operation":   operation,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	var err error
	if result != nil {
		err = result.Error
		fields["rows_affected"] = result.RowsAffected
		if result.Statement != nil && result.Statement.Table != "" {
			fields["table"] = result.Statement.Table
		}
	}
	if _, ok := fields["table"]; !ok {
		fields["table"] = p.cfg.Connection.DbName
	}

	if err != nil && !errors.Is(TranslateError(err), ErrRecordNotFound) {
		p.logger.WarnWithContext(ctx, "PostgreSQL operation failed", err, fields)
		return
	}
	p.logger.DebugWithContext(ctx, "PostgreSQL operation", nil, fields)
}

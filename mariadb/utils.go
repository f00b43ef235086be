package mariadb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DB returns the current GORM handle. A reconnect may replace it.
func (m *MariaDB) DB() *gorm.DB {
	return m.client.Load()
}

// logOperation writes a Debug entry per operation, or Warn when it failed
// with anything but a missing record.
func (m *MariaDB) logOperation(ctx context.Context, operation string, result *gorm.DB, start time.Time) {
	if m == nil || m.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"operation":   operation,
		"duration_ms": time.Since(start).Milliseconds(),
		"table":       m.cfg.Connection.DbName,
	}
	var err error
	if result != nil {
		err = result.Error
		fields["rows_affected"] = result.RowsAffected
		if result.Statement != nil && result.Statement.Table != "" {
			fields["table"] = result.Statement.Table
		}
	}

	if err != nil && !errors.Is(TranslateError(err), ErrRecordNotFound) {
		m.logger.WarnWithContext(ctx, "MariaDB operation failed", err, fields)
		return
	}
	m.logger.DebugWithContext(ctx, "MariaDB operation", nil, fields)
}

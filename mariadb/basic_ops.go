package mariadb

import (
	"context"
	"time"
)

func (m *MariaDB) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	start := time.Now()
	result := m.DB().WithContext(ctx).Find(dest, conditions...)
	m.logOperation(ctx, "find", result, start)
	return result.Error
}

// First returns gorm.ErrRecordNotFound when nothing matches.
func (m *MariaDB) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	start := time.Now()
	result := m.DB().WithContext(ctx).First(dest, conditions...)
	m.logOperation(ctx, "first", result, start)
	return result.Error
}

func (m *MariaDB) Create(ctx context.Context, value interface{}) error {
	start := time.Now()
	result := m.DB().WithContext(ctx).Create(value)
	m.logOperation(ctx, "create", result, start)
	return result.Error
}

func (m *MariaDB) Save(ctx context.Context, value interface{}) error {
	start := time.Now()
	result := m.DB().WithContext(ctx).Save(value)
	m.logOperation(ctx, "save", result, start)
	return result.Error
}

// Update applies attrs to the rows selected by model's primary key.
// MySQL counts only rows whose values changed as affected.
func (m *MariaDB) Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error) {
	start := time.Now()
	result := m.DB().WithContext(ctx).Model(model).Updates(attrs)
	m.logOperation(ctx, "update", result, start)
	return result.RowsAffected, result.Error
}

func (m *MariaDB) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	start := time.Now()
	result := m.DB().WithContext(ctx).Delete(value, conditions...)
	m.logOperation(ctx, "delete", result, start)
	return result.RowsAffected, result.Error
}

func (m *MariaDB) Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error {
	start := time.Now()
	db := m.DB().WithContext(ctx).Model(model)
	if len(conditions) > 0 {
		db = db.Where(conditions[0], conditions[1:]...)
	}
	result := db.Count(count)
	m.logOperation(ctx, "count", result, start)
	return result.Error
}

func (m *MariaDB) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	start := time.Now()
	result := m.DB().WithContext(ctx).Exec(sql, values...)
	m.logOperation(ctx, "exec", result, start)
	return result.RowsAffected, result.Error
}

func (m *MariaDB) AutoMigrate(ctx context.Context, models ...interface{}) error {
	start := time.Now()
	err := m.DB().WithContext(ctx).AutoMigrate(models...)
	if err == nil {
		m.logInfo(ctx, "MariaDB schema migrated", map[string]interface{}{
			"models":      len(models),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
	return err
}

package postgres

import (
	"context"
	"time"
)

// Find retrieves records matching conditions into dest, a pointer to a
// slice.
//
//	var users []User
//	err := db.Find(ctx, &users, "last_name = ?", "Martin")
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	start := time.Now()
	result := p.DB().WithContext(ctx).Find(dest, conditions...)
	p.logOperation(ctx, "find", result, start)
	return result.Error
}

// First retrieves the first record matching conditions, ordered by primary
// key. It returns gorm.ErrRecordNotFound when nothing matches.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	start := time.Now()
	result := p.DB().WithContext(ctx).First(dest, conditions...)
	p.logOperation(ctx, "first", result, start)
	return result.Error
}

// Create inserts value and fills its generated fields.
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	start := time.Now()
	result := p.DB().WithContext(ctx).Create(value)
	p.logOperation(ctx, "create", result, start)
	return result.Error
}

// Save updates every field of value, inserting it when its primary key is
// zero.
func (p *Postgres) Save(ctx context.Context, value interface{}) error {
	start := time.Now()
	result := p.DB().WithContext(ctx).Save(value)
	p.logOperation(ctx, "save", result, start)
	return result.Error
}

// Update applies attrs to the rows selected by model's primary key and
// returns the number of affected rows.
//
//	n, err := db.Update(ctx, &userRecord{ID: 1}, map[string]interface{}{"email": "new@example.com"})
func (p *Postgres) Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error) {
	start := time.Now()
	result := p.DB().WithContext(ctx).Model(model).Updates(attrs)
	p.logOperation(ctx, "update", result, start)
	return result.RowsAffected, result.Error
}

// Delete removes the rows matching value and conditions.
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	start := time.Now()
	result := p.DB().WithContext(ctx).Delete(value, conditions...)
	p.logOperation(ctx, "delete", result, start)
	return result.RowsAffected, result.Error
}

// Count stores the number of model rows matching conditions in count.
func (p *Postgres) Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error {
	start := time.Now()
	db := p.DB().WithContext(ctx).Model(model)
	if len(conditions) > 0 {
		db = db.Where(conditions[0], conditions[1:]...)
	}
	result := db.Count(count)
	p.logOperation(ctx, "count", result, start)
	return result.Error
}

// Exec runs raw SQL.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	start := time.Now()
	result := p.DB().WithContext(ctx).Exec(sql, values...)
	p.logOperation(ctx, "exec", result, start)
	return result.RowsAffected, result.Error
}

// AutoMigrate creates missing tables, columns and indexes for models.
func (p *Postgres) AutoMigrate(ctx context.Context, models ...interface{}) error {
	start := time.Now()
	db := p.DB().WithContext(ctx)
	err := db.AutoMigrate(models...)
	if err == nil {
		p.logInfo(ctx, "PostgreSQL schema migrated", map[string]interface{}{
			"models":      len(models),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
	return err
}

// Package mariadb provides a MariaDB/MySQL client built on top of GORM and
// go-sql-driver/mysql.
//
// It mirrors the postgres package: a Client interface, a *MariaDB
// implementation with health checks and automatic reconnection, CRUD helpers
// that log each operation at Debug, and TranslateError, which maps GORM
// errors and MySQL error numbers onto package sentinels.
//
// # Basic usage
//
//	db, err := mariadb.NewMariaDB(mariadb.Config{
//	    Connection: mariadb.Connection{
//	        Host:     "localhost",
//	        Port:     "3306",
//	        User:     "library",
//	        Password: "secret",
//	        DbName:   "library",
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.GracefulShutdown()
//
// # Fx integration
//
// FXModule constructs *MariaDB, exposes it as Client and registers the
// monitoring goroutines with the application lifecycle.
package mariadb

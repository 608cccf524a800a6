// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL or SQLite
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the pool and pings it. The handle is created once at process
// start, passed explicitly to the features that need it and released with
// Close at shutdown. SQLite is limited to a single connection so that
// ":memory:" databases behave as one database.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for each supported dialect and
// MissingColumns compares them against an expected set. The countries feature
// uses it to verify its table after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer database.Close(db)
//
//	missing, err := database.MissingColumns(db, "countries", []string{"name"})
package database

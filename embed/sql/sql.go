package sql

import _ "embed"

// SQLiteSchema creates the key-value table for the sqlite driver.
//
//go:embed schema_sqlite.sql
var SQLiteSchema string

// MySQLSchema creates the key-value table for the mysql driver.
//
//go:embed schema_mysql.sql
var MySQLSchema string

// Package postgres provides PostgreSQL implementations of the store
// interfaces, plus the SQL filter builder and the paginated list engine the
// stores are built on. It uses the pgx stdlib driver through database/sql.
package postgres

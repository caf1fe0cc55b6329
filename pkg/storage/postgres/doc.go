// Package postgres implements domain.EmployeeStore on PostgreSQL with pgx.
//
// Every store operation opens its own session from a SessionSource, runs a
// single autocommitted statement and closes the session before returning,
// whether or not the statement succeeded.
package postgres

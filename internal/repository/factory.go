package repository

import "github.com/aoemotors/leaddesk/internal/db"

// Factory builds repositories over a connection or transaction. Services
// that open a UnitOfWork use it to get tx-scoped repos without knowing
// which driver backs the database.
type Factory interface {
	Bookings(conn db.DBTX) BookingRepository
	EmailLogs(conn db.DBTX) EmailLogRepository
}

// SQLiteFactory builds SQLite-backed repositories.
type SQLiteFactory struct{}

func (SQLiteFactory) Bookings(conn db.DBTX) BookingRepository {
	return NewSQLiteBookingRepo(conn)
}

func (SQLiteFactory) EmailLogs(conn db.DBTX) EmailLogRepository {
	return NewSQLiteEmailLogRepo(conn)
}

// PostgresFactory builds Postgres-backed repositories.
type PostgresFactory struct{}

func (PostgresFactory) Bookings(conn db.DBTX) BookingRepository {
	return NewPostgresBookingRepo(conn)
}

func (PostgresFactory) EmailLogs(conn db.DBTX) EmailLogRepository {
	return NewPostgresEmailLogRepo(conn)
}

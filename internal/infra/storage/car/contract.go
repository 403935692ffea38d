package car

import (
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
)

// DBExecutor исполнитель запросов (*sql.DB, *dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

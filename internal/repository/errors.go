package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Repository error taxonomy. ErrIntegrity and ErrInvalidQuery both
// unwrap to ErrRepository, so errors.Is against the base catches every
// store-layer failure.
var (
	ErrRepository   = errors.New("repository error")
	ErrIntegrity    = fmt.Errorf("%w: integrity violation", ErrRepository)
	ErrInvalidQuery = fmt.Errorf("%w: invalid query", ErrRepository)
)

// MySQL server error numbers that indicate a constraint violation.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
	mysqlErrBadNull         = 1048
)

// MySQL server error numbers that indicate a malformed statement.
const (
	mysqlErrBadField   = 1054
	mysqlErrSyntax     = 1064
	mysqlErrNoSuchTbl  = 1146
	mysqlErrBadValue   = 1366
	mysqlErrTruncated  = 1292
)

// translate maps a driver error into the repository taxonomy. Nil
// passes through; anything unrecognized is wrapped as a generic
// repository error.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry, mysqlErrRowIsReferenced, mysqlErrNoReferencedRow, mysqlErrBadNull:
			return fmt.Errorf("%w: %v", ErrIntegrity, err)
		case mysqlErrBadField, mysqlErrSyntax, mysqlErrNoSuchTbl, mysqlErrBadValue, mysqlErrTruncated:
			return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrRepository, err)
}

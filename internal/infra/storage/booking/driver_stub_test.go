package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// failingConnector отдает соединение, на котором любой запрос завершается ошибкой err
type failingConnector struct {
	err error
}

func (c failingConnector) Connect(context.Context) (driver.Conn, error) {
	return failingConn{err: c.err}, nil
}

func (c failingConnector) Driver() driver.Driver {
	return failingDriver{connector: c}
}

type failingDriver struct {
	connector failingConnector
}

func (d failingDriver) Open(string) (driver.Conn, error) {
	return d.connector.Connect(context.Background())
}

type failingConn struct {
	err error
}

func (c failingConn) Prepare(string) (driver.Stmt, error) { return nil, c.err }
func (c failingConn) Close() error                        { return nil }
func (c failingConn) Begin() (driver.Tx, error)           { return nil, c.err }

func (c failingConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return nil, c.err
}

func (c failingConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return nil, c.err
}

func newFailingDB(err error) *sql.DB {
	return sql.OpenDB(failingConnector{err: err})
}

package benchmark

import (
	"github.com/pkg/errors"

	"sqlitebench/rowgen"
	"sqlitebench/store"
)

// The key column is a declared TEXT primary key, so SQLite keeps it in a
// separate index from the implicit rowid that clusters the table.
const createTableSQL = `CREATE TABLE IF NOT EXISTS Test(
	key TEXT,
	num1 FLOAT,
	num2 FLOAT,
	num3 FLOAT,
	num4 FLOAT,
	PRIMARY KEY(key))`

// SetupSchema creates the Test table if it does not already exist. It is
// shaped as a Strategy so scenarios can use it directly as their fixture.
func SetupSchema(s *store.Session, _ int, _ *rowgen.Generator) error {
	return s.Exec(createTableSQL)
}

// CountRows returns the number of rows in the Test table.
func CountRows(s *store.Session) (int, error) {
	var n int
	err := s.DB().QueryRow("SELECT COUNT(*) FROM Test").Scan(&n)
	return n, errors.Wrap(err, "counting rows")
}

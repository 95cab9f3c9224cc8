package update

import (
	"github.com/pkg/errors"

	"sqlitebench/benchmark"
	"sqlitebench/benchmark/insert"
	"sqlitebench/rowgen"
	"sqlitebench/store"
)

// Scenarios returns the update strategies in report order. Both share the
// same fixture and the same BEGIN - cursor - COMMIT shape; they differ only
// in the column used to locate each row.
func Scenarios() []benchmark.Scenario {
	return []benchmark.Scenario{
		{
			Name:    "Update Rows PK",
			Group:   benchmark.GroupUpdate,
			Default: true,
			Fixture: Fixture,
			Run:     ByKey,
		},
		{
			Name:    "Update Rows ROWID",
			Group:   benchmark.GroupUpdate,
			Default: true,
			Fixture: Fixture,
			Run:     ByRowid,
		},
	}
}

// Fixture creates the schema and loads it through the prepared transactional
// insert, so both update scenarios start from an identically shaped store.
func Fixture(s *store.Session, rowCount int, gen *rowgen.Generator) error {
	if err := benchmark.SetupSchema(s, rowCount, gen); err != nil {
		return err
	}
	return insert.Prepared(s, rowCount, gen)
}

// ByKey walks every row in ascending key order and rewrites it through the
// declared TEXT primary key. Key order is not the physical row order, so
// each UPDATE pays a primary key index lookup.
func ByKey(s *store.Session, _ int, _ *rowgen.Generator) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sel, err := tx.Prepare("SELECT key, num1, num2, num3, num4 FROM Test ORDER BY key")
	if err != nil {
		return errors.Wrap(err, "prepare select")
	}
	defer sel.Close()

	up, err := tx.Prepare("UPDATE Test SET num1 = ?, num2 = ?, num3 = ?, num4 = ? WHERE key = ?")
	if err != nil {
		return errors.Wrap(err, "prepare update")
	}
	defer up.Close()

	cursor, err := sel.Query()
	if err != nil {
		return errors.Wrap(err, "select")
	}
	defer cursor.Close()

	for cursor.Next() {
		var key string
		var num1, num2, num3, num4 float64
		if err := cursor.Scan(&key, &num1, &num2, &num3, &num4); err != nil {
			return errors.Wrap(err, "scan")
		}

		if _, err := up.Exec(num1+1, num2+1, num3+1, num4+1, key); err != nil {
			return errors.Wrap(err, "update")
		}
	}
	if err := cursor.Err(); err != nil {
		return errors.Wrap(err, "cursor")
	}
	cursor.Close()

	return errors.Wrap(tx.Commit(), "commit")
}

// ByRowid is the same walk keyed by the implicit rowid. Every table without
// an INTEGER PRIMARY KEY column carries _rowid_, and it is the clustering
// key, so this variant skips the index lookup ByKey pays per row.
func ByRowid(s *store.Session, _ int, _ *rowgen.Generator) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sel, err := tx.Prepare("SELECT _rowid_, num1, num2, num3, num4 FROM Test ORDER BY _rowid_")
	if err != nil {
		return errors.Wrap(err, "prepare select")
	}
	defer sel.Close()

	up, err := tx.Prepare("UPDATE Test SET num1 = ?, num2 = ?, num3 = ?, num4 = ? WHERE _rowid_ = ?")
	if err != nil {
		return errors.Wrap(err, "prepare update")
	}
	defer up.Close()

	cursor, err := sel.Query()
	if err != nil {
		return errors.Wrap(err, "select")
	}
	defer cursor.Close()

	for cursor.Next() {
		var rowid int64
		var num1, num2, num3, num4 float64
		if err := cursor.Scan(&rowid, &num1, &num2, &num3, &num4); err != nil {
			return errors.Wrap(err, "scan")
		}

		if _, err := up.Exec(num1+1, num2+1, num3+1, num4+1, rowid); err != nil {
			return errors.Wrap(err, "update")
		}
	}
	if err := cursor.Err(); err != nil {
		return errors.Wrap(err, "cursor")
	}
	cursor.Close()

	return errors.Wrap(tx.Commit(), "commit")
}

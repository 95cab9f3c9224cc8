package update_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sqlitebench/benchmark"
	"sqlitebench/benchmark/update"
	"sqlitebench/rowgen"
	"sqlitebench/store"
)

type testRow struct {
	key                    string
	num1, num2, num3, num4 float64
}

func newSession(t *testing.T) *store.Session {
	t.Helper()
	session, err := store.Open(store.Config{Driver: "sqlite", Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// Loads the concrete three-row working set: (K-0,1,1,1,1) (K-1,2,2,2,2)
// (K-2,3,3,3,3).
func loadThreeRows(t *testing.T, s *store.Session) {
	t.Helper()
	require.NoError(t, benchmark.SetupSchema(s, 0, nil))
	for i, v := range []float64{1, 2, 3} {
		require.NoError(t, s.Exec(
			"INSERT INTO Test(key, num1, num2, num3, num4) VALUES(?, ?, ?, ?, ?)",
			rowgen.Key(i), v, v, v, v))
	}
}

func readAllByKey(t *testing.T, s *store.Session) []testRow {
	t.Helper()
	rows, err := s.DB().Query("SELECT key, num1, num2, num3, num4 FROM Test ORDER BY key")
	require.NoError(t, err)
	defer rows.Close()

	var all []testRow
	for rows.Next() {
		var r testRow
		require.NoError(t, rows.Scan(&r.key, &r.num1, &r.num2, &r.num3, &r.num4))
		all = append(all, r)
	}
	require.NoError(t, rows.Err())
	return all
}

func requireRowsEqual(t *testing.T, expected, actual []testRow) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.Equal(t, expected[i].key, actual[i].key)
		require.InDelta(t, expected[i].num1, actual[i].num1, 1e-9)
		require.InDelta(t, expected[i].num2, actual[i].num2, 1e-9)
		require.InDelta(t, expected[i].num3, actual[i].num3, 1e-9)
		require.InDelta(t, expected[i].num4, actual[i].num4, 1e-9)
	}
}

func TestFixturePopulatesWorkingSet(t *testing.T) {
	session := newSession(t)

	require.NoError(t, update.Fixture(session, 50, rowgen.New(1)))

	n, err := benchmark.CountRows(session)
	require.NoError(t, err)
	require.Equal(t, 50, n)
}

func TestByKeyIncrementsEveryField(t *testing.T) {
	session := newSession(t)
	loadThreeRows(t, session)

	require.NoError(t, update.ByKey(session, 3, nil))

	requireRowsEqual(t, []testRow{
		{"K-0", 2, 2, 2, 2},
		{"K-1", 3, 3, 3, 3},
		{"K-2", 4, 4, 4, 4},
	}, readAllByKey(t, session))
}

func TestByRowidIncrementsEveryField(t *testing.T) {
	session := newSession(t)
	loadThreeRows(t, session)

	require.NoError(t, update.ByRowid(session, 3, nil))

	requireRowsEqual(t, []testRow{
		{"K-0", 2, 2, 2, 2},
		{"K-1", 3, 3, 3, 3},
		{"K-2", 4, 4, 4, 4},
	}, readAllByKey(t, session))
}

func TestUpdatePreservesRowCount(t *testing.T) {
	session := newSession(t)
	require.NoError(t, update.Fixture(session, 20, rowgen.New(3)))

	before, err := benchmark.CountRows(session)
	require.NoError(t, err)

	require.NoError(t, update.ByKey(session, 20, nil))
	require.NoError(t, update.ByRowid(session, 20, nil))

	after, err := benchmark.CountRows(session)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestByKeyAddsExactlyOneToFixtureValues(t *testing.T) {
	session := newSession(t)
	require.NoError(t, update.Fixture(session, 30, rowgen.New(5)))

	before := readAllByKey(t, session)
	require.NoError(t, update.ByKey(session, 30, nil))
	after := readAllByKey(t, session)

	require.Len(t, after, len(before))
	for i := range before {
		require.Equal(t, before[i].key, after[i].key)
		require.InDelta(t, before[i].num1+1, after[i].num1, 1e-9)
		require.InDelta(t, before[i].num2+1, after[i].num2, 1e-9)
		require.InDelta(t, before[i].num3+1, after[i].num3, 1e-9)
		require.InDelta(t, before[i].num4+1, after[i].num4, 1e-9)
	}
}

// Both variants must commit the same final data when run on identical
// fixtures; only the internal iteration order differs.
func TestVariantsProduceIdenticalFinalData(t *testing.T) {
	byKey := newSession(t)
	require.NoError(t, update.Fixture(byKey, 40, rowgen.New(11)))
	require.NoError(t, update.ByKey(byKey, 40, nil))

	byRowid := newSession(t)
	require.NoError(t, update.Fixture(byRowid, 40, rowgen.New(11)))
	require.NoError(t, update.ByRowid(byRowid, 40, nil))

	requireRowsEqual(t, readAllByKey(t, byKey), readAllByKey(t, byRowid))
}

func TestUpdateOnEmptyTableSucceeds(t *testing.T) {
	session := newSession(t)
	require.NoError(t, benchmark.SetupSchema(session, 0, nil))

	require.NoError(t, update.ByKey(session, 0, nil))
	require.NoError(t, update.ByRowid(session, 0, nil))
}

func TestScenarioDeclarationOrder(t *testing.T) {
	scenarios := update.Scenarios()
	require.Len(t, scenarios, 2)
	require.Equal(t, "Update Rows PK", scenarios[0].Name)
	require.Equal(t, "Update Rows ROWID", scenarios[1].Name)

	for _, sc := range scenarios {
		require.Equal(t, benchmark.GroupUpdate, sc.Group)
		require.True(t, sc.Default)
		require.NotNil(t, sc.Fixture)
	}
}

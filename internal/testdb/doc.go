// Package testdb provides migrated databases for tests.
//
// By default every call to Open returns a private in-memory SQLite database
// with the schema applied. Setting TILI_TEST_DB_URL points the same tests at
// a PostgreSQL instance instead; in that case tests share one database and
// should isolate their writes with WithTx and distinct owner IDs.
//
// Basic usage:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			cards := sqlstore.NewCardStore(tx, nil)
//			// ...
//		})
//	}
package testdb

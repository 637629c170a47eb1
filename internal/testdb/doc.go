// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using it should carry the "integration" build tag. GetTestDBWithT
// skips the test when DATABASE_URL is unset, so the package is safe to
// import from suites that sometimes run without a database.
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		docs := postgres.NewPostgresDocumentStore(tx, nil)
//		...
//	})
package testdb

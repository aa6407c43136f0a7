// Package testdb provides isolated SurrealDB databases for repository tests.
//
// Each TestDB gets its own namespace with the schema in migrations/ applied,
// and removes it on Close. The server is read from TEST_CONNECTION_STRING
// (default ws://root:root@localhost:8000/test/test); when it cannot be
// reached the calling test is skipped.
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    result, err := tdb.DB.Query(tdb.Ctx(), "SELECT * FROM user", nil)
//	}
package testdb

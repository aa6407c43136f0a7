// Package repository implements the data access layer for the festival API.
//
// Each repository wraps a database.Database and speaks SurrealQL. Lookups
// return (nil, nil) when the record does not exist so services can choose
// the not-found error themselves.
//
// Writes that touch two documents (friendship links, likes) go through
// database.AtomicBatch and commit as one transaction:
//
//	repo := NewUserRepository(db)
//	err := repo.AddFriendship(ctx, "user:ana", "user:bob")
//
// Record links come back from the driver as models.RecordID values and are
// rendered as "table:id" strings before decoding into model structs.
package repository

// Package database provides database connectivity for the festival API.
//
// A single process-wide connection is opened at startup:
//
//	db := database.NewSurrealDB(database.Config{
//	    URL:            "ws://localhost:8000",
//	    Namespace:      "festival",
//	    Database:       "main",
//	    User:           "root",
//	    Password:       "root",
//	    ConnectTimeout: 2 * time.Second,
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// A failed connect is reported to the caller and never retried; there is no
// implicit reconnect afterwards.
package database

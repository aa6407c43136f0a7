// Package model defines domain entities and wire types for the festival API.
//
// Entities mirror the stored documents (User, Festival, Style, Artist).
// Projections (PublicUser, FriendProfile, Profile) are what the routes
// return; they never carry the password hash.
//
// Record ids are exposed as "table:id" strings. RecordID adds the table
// prefix to bare ids coming from clients.
//
// # Partial updates
//
// ProfileUpdate uses Patch[T] so that an omitted key and an explicit null
// decode differently:
//
//	var u ProfileUpdate
//	_ = json.Unmarshal([]byte(`{"token":"t","birthdate":null}`), &u)
//	u.Birthdate.Set  // true
//	u.Birthdate.Null // true
//	u.City.Set       // false
//
// # Errors
//
// APIError is the failure envelope {"result": false, "error": "..."} written
// by every handler. Its Status field selects the HTTP status code.
package model

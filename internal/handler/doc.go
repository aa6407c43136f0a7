// Package handler provides HTTP request handlers for the festival API.
//
// Handlers are organized by area (account, friends, festivals, profile,
// photo) on a single UserHandler that depends on small service interfaces.
// Routes are registered on a net/http ServeMux with method patterns and are
// mounted twice, at the root and under /users.
//
// # Response Format
//
// Every JSON response carries a boolean "result":
//
//	{"result": true, "token": "..."}
//	{"result": false, "error": "Missing or empty fields", "code": 4001, "fields": [...]}
//
// Service errors are converted by MapServiceError so status codes and
// messages stay consistent across routes.
//
// # Request Bodies
//
// bindBody checks the required keys first (absent, null or blank strings are
// missing) and only then decodes into the typed request.
//
//	var req tokenRequest
//	if !bindBody(w, r, &req, "token") {
//	    return
//	}
package handler

// Package client is the HTTP transport to the EduCloud backend.
//
// # Overview
//
//  1. Client is the auth contract: Login, Register, Logout and Health. Auth
//     replies are decoded whatever the status code, since the backend
//     reports rejected credentials as {"success":false,"message":...}.
//  2. API is the authenticated generic JSON client (Get, Post, Put, Delete)
//     used for the rest of the backend. It attaches the bearer token from a
//     TokenSource and maps failed responses to APIError.
//  3. HTTPClient implements both.
//
// # Error Handling
//
// Transport failures and undecodable auth replies wrap common.ErrNetwork.
// APIError unwraps to one of ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrServer, ErrUnavailable or ErrRequest, so callers can use errors.Is.
//
// Every request carries an X-Request-ID header for log correlation. Nothing
// is retried.
package client

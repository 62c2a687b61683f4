// Package endpoints contains the HTTP handlers of the Vidzel API.
//
// Each Register*Endpoints function mounts one area of the API on the
// server's router. Authenticated areas sit behind the session token
// middleware and read the caller from the request context. Handlers only
// talk to the store interfaces, so tests drive them with testify mocks.
//
// Store sentinel errors are mapped onto HTTP answers in one place
// (respondWithStoreError): lookups become 404 and conflicts 409. Anything
// else is logged with the request id and answered with a bare 500.
package endpoints

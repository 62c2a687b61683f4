// Package identity carries the authenticated account through a request.
//
// The auth middleware verifies the bearer token, builds an Identity from
// its claims and stores it in the request context:
//
//	id := identity.FromClaims(claims).
//	    WithRemoteIP(clientIP).
//	    WithRequestID(requestID)
//	ctx = identity.Set(ctx, id)
//
// Handlers read it back with identity.Get.
package identity

// Package api provides an HTTP client for the food-ordering backend.
//
// # Overview
//
// Every backend call goes through Client.Request, which applies per-call
// timeouts, paces traffic with a token-bucket limiter, attaches the bearer
// token for authenticated endpoints, and decodes JSON into typed structs.
//
// # Endpoints
//
//   - GET /api/foods?cuisine=&search=: the menu (10s timeout, no-cache headers)
//   - GET /api/users/profile: the signed-in profile (bearer)
//   - GET /api/orders/my-orders: the signed-in user's orders (bearer)
//   - GET /api/restaurants?search=: restaurant search
//
// Only filters with a non-blank value are sent as query parameters.
//
// # Invalid Sessions
//
// A response with status 401 or 400 whose JSON body carries
// {"message":"Invalid Token"} is the backend's way of rejecting the stored
// credential. Request recognises that signature on every call, whether or
// not the call itself was authenticated, and tells the SessionGuard to
// invalidate. The original error is still returned to the caller.
//
// # Error Handling
//
// Non-2xx responses return *APIError carrying the status and the body's
// "message" field. Use MessageOf to prefer the server's message over a
// caller-supplied fallback. Transport and decode errors are wrapped with
// fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/foods returned status 500: db down"
//   - "decode response: unexpected end of JSON input"
//
// # URL Construction
//
// NewClient accepts "host:port" or a full URL. The scheme defaults to
// http and any path, query, or fragment on the base is dropped.
// ImageURL resolves relative image paths from the menu against the same
// root.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package api

// Package services defines the [Platform] interface for messaging support platforms and implements it over their REST APIs.
//
// # Platform Interface
//
// Both tenants of the migration (source and destination) expose the same API
// surface, so a single [Client] implements [Platform] for either side. The
// pipeline only ever talks to the interface, which keeps migration logic
// testable against in-memory fakes.
//
// # Client Implementation
//
// [Client] authenticates with a static bearer token via [oauth2.StaticTokenSource]
// and speaks JSON to the tenant's /v2 endpoints.
//
// Paginated listings follow the hypermedia links the API returns:
//   - agent directories walk link.next_page.href until exhausted
//   - message pages walk link.href until exhausted
//
// Channel listings are a single page.
//
// # Raw Access
//
// [Client.Get], [Client.Post] and [Client.Put] return the untyped
// [APIResponse] used by the api passthrough command for debugging tenants.
//
// # Error Handling
//
// Requests that reach the server but fail wrap [shared.ErrAPIRequest] with
// the method, endpoint and status code. Transport failures wrap
// [shared.ErrServiceUnavailable].
package services

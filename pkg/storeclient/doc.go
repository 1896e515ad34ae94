// Package storeclient is a typed client for the storefront REST API as used
// by the cart page: login, catalog listing, cart fetch and cart mutations.
//
// Server-reported failures come back as *APIError. Failures to complete the
// request at all come back as *TransportError. The client never retries.
package storeclient

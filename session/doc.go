// Package session persists the authenticated user's credentials and
// bearer token in an asynchronous string key-value store, and offers
// unverified inspection of the stored JWT for expiry and user name.
package session

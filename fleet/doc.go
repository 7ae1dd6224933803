// Package fleet models one tracked vehicle as received from the fleet
// API. Payloads are inconsistently cased and use several synonyms per
// logical field, so Record is an open mapping read exclusively through
// resolver functions that probe a fixed ordered key list.
package fleet

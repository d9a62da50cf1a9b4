// Package cache stores raw payloads with an absolute expiry.
//
// Entries are replaced as a whole on Set and never merged. Implementations do
// not lock around read-then-fetch sequences, so two callers that miss at the
// same time will both refill the entry; the last write wins.
package cache

// Package hash provides keyed digests used for tokens and deduplication keys.
//
// Only digests are stored or compared; the secret never leaves the process.
package hash

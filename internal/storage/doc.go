// Package storage groups the persistent backends for the word history
// ledger. Each subpackage implements history.Store.
package storage

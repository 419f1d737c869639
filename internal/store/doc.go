// Package store implements encrypted credential stores.
//
// A store is a single file at {base}/{name}.fa holding the encrypted JSON
// array of its credentials. Every command loads a store, mutates it in
// memory and saves it at most once; nothing is cached between invocations.
// Encryption is delegated to a provider.Provider.
package store

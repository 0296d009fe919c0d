// Package storage is the flat-file persistence boundary for the tracker.
// Every artifact the pipeline produces is a whole file under one data root,
// partitioned into a fixed set of directories; the Store interface keeps the
// pipeline logic away from file paths so tests can run against MemStore.
package storage

import "errors"

// ErrNotFound is returned by Get when no file exists for the given name.
var ErrNotFound = errors.New("storage: not found")

// Store reads and writes whole files inside partition directories under the
// data root. dir selects the partition ("" is the root itself), name the
// file inside it. Put replaces the file's full content; Append is reserved
// for the append-only profit log.
type Store interface {
	Put(dir, name string, data []byte) error
	Get(dir, name string) ([]byte, error)
	Append(dir, name string, data []byte) error
	List(dir string) ([]string, error)
}

// Package mmap provides read-only memory-mapped file access.
//
// LocalStore opens snapshot blobs through this package so that decoding reads
// straight from the page cache. On platforms without mmap support the file is
// read into memory instead; callers cannot tell the difference.
//
// # Usage
//
//	m, err := mmap.Open("tables.rmap")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes() // valid until Close
package mmap

// Package hash provides the checksum used to verify persisted snapshots.
//
// Snapshots are checked with CRC32-Castagnoli (CRC32C), which Go's hash/crc32
// accelerates in hardware on x86 (SSE4.2) and ARM (CRC extension).
//
//	checksum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(header)
//	h.Write(body)
//	checksum := h.Sum32()
package hash

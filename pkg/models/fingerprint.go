package models

import (
	"encoding/hex"
	"fmt"
)

// DigestSize is the width of a fingerprint digest in bytes (128 bits)
const DigestSize = 16

// FileFingerprint is a cheap identity signature of a file's content.
// It is built from the file size and a digest of the first and last chunks,
// never from metadata such as modification time.
type FileFingerprint struct {
	Size   uint64
	Digest [DigestSize]byte
}

// Equal reports whether both size and digest match
func (f FileFingerprint) Equal(other FileFingerprint) bool {
	return f.Size == other.Size && f.Digest == other.Digest
}

// DigestHex returns the digest as a lowercase hex string
func (f FileFingerprint) DigestHex() string {
	return hex.EncodeToString(f.Digest[:])
}

func (f FileFingerprint) String() string {
	return fmt.Sprintf("%d:%s", f.Size, f.DigestHex())
}

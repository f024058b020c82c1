package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// operationID derives the content-addressed identifier for an operation:
// a SHA-256 digest over the operation source followed by the sources of its
// referenced fragments, in reference order. Persisted-query servers use the
// same digest to look operations up.
func operationID(source string, fragmentSources []string) string {
	h := sha256.New()
	io.WriteString(h, source)
	for _, fs := range fragmentSources {
		io.WriteString(h, "\n")
		io.WriteString(h, fs)
	}
	return hex.EncodeToString(h.Sum(nil))
}

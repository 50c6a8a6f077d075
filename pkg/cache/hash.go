package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data. Payload hashes, chart hashes and
// file cache names all use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the JSON encoding of v. A value that cannot be encoded
// hashes its %#v formatting instead, which is stable within one process.
func HashValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", v))
	}
	return Hash(data)
}

// hashKey builds "<prefix>:<hash of parts>".
func hashKey(prefix string, parts ...any) string {
	return prefix + ":" + HashValue(parts)
}

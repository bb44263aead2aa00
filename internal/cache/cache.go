// Package cache deduplicates extraction work across runs. Android delivers
// the same bank SMS broadcast more than once, and a batch re-run over an
// export file should not mint new candidate IDs for messages already seen.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/finshare/finx/internal/model"
)

// Cache is the storage interface shared by the memory and disk layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// MessageKey derives the cache key for an SMS from its sender and body.
func MessageKey(sourceID, body string) string {
	hash := sha256.Sum256([]byte(sourceID + "\x00" + body))
	return "finx:sms:v1:" + hex.EncodeToString(hash[:])
}

// ReceiptKey derives the cache key for a receipt from its OCR text.
func ReceiptKey(ocrText string) string {
	hash := sha256.Sum256([]byte(ocrText))
	return "finx:receipt:v1:" + hex.EncodeToString(hash[:])
}

// PutCandidate stores an extracted candidate under its message key.
func PutCandidate(c Cache, sourceID, body string, cand *model.TransactionCandidate, ttl time.Duration) error {
	data, err := json.Marshal(cand)
	if err != nil {
		return err
	}
	return c.Set(MessageKey(sourceID, body), data, ttl)
}

// GetCandidate returns the cached candidate for a message, if any. A cache
// entry that no longer unmarshals is treated as a miss.
func GetCandidate(c Cache, sourceID, body string) (*model.TransactionCandidate, bool) {
	data, ok := c.Get(MessageKey(sourceID, body))
	if !ok {
		return nil, false
	}
	var cand model.TransactionCandidate
	if err := json.Unmarshal(data, &cand); err != nil {
		return nil, false
	}
	return &cand, true
}

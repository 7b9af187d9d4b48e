package httpx

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

var idSeq atomic.Uint64

// genID returns a 16-hex-digit request ID.
func genID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand failing is not worth dropping a request over.
		binary.BigEndian.PutUint64(b[:], uint64(time.Now().UnixNano())^idSeq.Add(1))
	}
	return hex.EncodeToString(b[:])
}

package dispatch

import (
	"strconv"
	"sync/atomic"
	"time"
)

// idGenerator issues correlation ids derived from the high-resolution clock.
// A process-wide sequence disambiguates ids issued within the same tick, so
// ids stay unique for the lifetime of the process.
type idGenerator struct {
	seq uint64
}

func (g *idGenerator) Next() string {
	n := atomic.AddUint64(&g.seq, 1)
	return strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.FormatUint(n, 10)
}

package core

import "runtime"

// WriteCursor reports the producer's position in a receive ring. The
// position is derived from hardware state on every call (for a DMA
// engine, capacity minus the transfer-remaining counter) and is strictly
// read-only to the consumer side. Producer and consumer therefore share no
// mutable variable: the hardware owns the write position, the Ring owns
// the read cursor, and the pair needs no lock.
type WriteCursor interface {
	// WritePos returns the next insertion offset, in [0, capacity).
	WritePos() int
}

// WriteCursorFunc adapts a plain function to the WriteCursor interface.
type WriteCursorFunc func() int

func (f WriteCursorFunc) WritePos() int { return f() }

// Ring is a single-producer single-consumer receive channel over a fixed
// byte buffer. The hardware producer fills the buffer autonomously,
// wrapping without ever stopping; software only reads. There is no
// overflow detection: when the consumer falls a full lap behind, unread
// bytes are overwritten without any signal. Callers that cannot tolerate
// loss must drain faster than the line rate.
//
// One consumer per ring. A second concurrent reader would race on the
// read cursor; none is supported.
type Ring struct {
	buf   []byte
	rd    int
	cur   WriteCursor
	delim byte
	idle  func()
}

// NewRing builds a ring over buf, reading the producer position from cur.
// buf is the storage the hardware engine was armed with; delim marks line
// boundaries for CanReadLine and ReadLine.
func NewRing(buf []byte, cur WriteCursor, delim byte) *Ring {
	return &Ring{
		buf:   buf,
		cur:   cur,
		delim: delim,
		idle:  runtime.Gosched,
	}
}

// SetIdle replaces the hook run between polls while Read or ReadLine
// blocks. The default yields the processor so cooperative goroutines keep
// running; a bare-metal port with no scheduler may install a spin or wait
// instruction instead.
func (r *Ring) SetIdle(f func()) {
	if f == nil {
		f = func() {}
	}
	r.idle = f
}

// Cap returns the ring capacity in bytes.
func (r *Ring) Cap() int { return len(r.buf) }

// BytesAvailable reports the unread byte count: the forward distance,
// modulo capacity, from the read cursor to the write position. Pure and
// non-blocking.
func (r *Ring) BytesAvailable() int {
	wr := r.cur.WritePos()
	if r.rd <= wr {
		return wr - r.rd
	}
	return len(r.buf) - r.rd + wr
}

// IsReadable reports whether at least one unread byte is pending.
func (r *Ring) IsReadable() bool {
	return r.rd != r.cur.WritePos()
}

// CanReadLine scans forward from the read cursor toward the write
// position and returns the length of the first pending line, delimiter
// included, or 0 when no delimiter is pending. Nothing is consumed, so
// repeated calls return the same answer until a read or clear intervenes.
func (r *Ring) CanReadLine() int {
	idx := r.rd
	wr := r.cur.WritePos()

	for idx != wr {
		ch := r.buf[idx]
		idx++
		if ch == r.delim {
			if r.rd < idx {
				return idx - r.rd
			}
			return len(r.buf) - r.rd + idx
		}
		if idx >= len(r.buf) {
			idx = 0
		}
	}
	return 0
}

// Read returns exactly n bytes, blocking until the producer has delivered
// enough. Blocking polls the write position with the idle hook between
// polls; a request for more bytes than will ever arrive blocks forever,
// with no timeout and no cancellation.
func (r *Ring) Read(n int) []byte {
	if n <= 0 {
		return nil
	}

	out := make([]byte, n)
	pos := 0
	for pos < n {
		avail := r.BytesAvailable()
		if avail == 0 {
			r.idle()
			continue
		}
		if avail > n-pos {
			avail = n - pos
		}
		for ; avail > 0; avail-- {
			out[pos] = r.buf[r.rd]
			pos++
			r.rd++
			if r.rd >= len(r.buf) {
				r.rd = 0
			}
		}
	}
	return out
}

// ReadLine blocks until a full line is pending, consumes it including the
// delimiter, and returns the line without the delimiter.
func (r *Ring) ReadLine() []byte {
	var n int
	for {
		n = r.CanReadLine()
		if n > 0 {
			break
		}
		r.idle()
	}

	line := r.Read(n)
	return line[:n-1]
}

// Clear discards all pending unread bytes by moving the read cursor to
// the current write position. Nothing is copied out.
func (r *Ring) Clear() {
	r.rd = r.cur.WritePos()
}

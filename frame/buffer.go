// Package frame holds the per-frame object buffers. Every buffer is emptied
// at the start of a frame and refilled by the ingestion handlers; the backing
// arrays are kept between frames so a steady stream of frames allocates
// nothing.
package frame

import (
	"fmt"
	"unsafe"

	"xpclient/fault"
)

// maxObjects bounds every buffer. Growing past it is treated like a failed
// allocation.
const maxObjects = 1 << 16

const minGrow = 16

// Buffer is a growable array of one record type. It never shrinks.
type Buffer[T any] struct {
	items []T
	limit int
}

// NewBuffer returns an empty buffer that refuses to hold more than limit
// records. A limit of zero means maxObjects.
func NewBuffer[T any](limit int) Buffer[T] {
	if limit <= 0 {
		limit = maxObjects
	}
	return Buffer[T]{limit: limit}
}

// Reset empties the buffer but keeps its capacity.
func (b *Buffer[T]) Reset() {
	b.items = b.items[:0]
}

// Append adds one record, doubling the backing array when it is full. When
// the buffer cannot grow it is dropped entirely and fault.ErrNoMemory is
// returned.
func (b *Buffer[T]) Append(v T) error {
	if len(b.items) == cap(b.items) {
		if err := b.reserve(len(b.items) + 1); err != nil {
			return err
		}
	}
	b.items = append(b.items, v)
	return nil
}

// Replace overwrites the buffer contents with src.
func (b *Buffer[T]) Replace(src []T) error {
	if len(src) > cap(b.items) {
		b.items = b.items[:0]
		if err := b.reserve(len(src)); err != nil {
			return err
		}
	}
	b.items = append(b.items[:0], src...)
	return nil
}

// reserve makes room for n records.
func (b *Buffer[T]) reserve(n int) error {
	limit := b.limit
	if limit <= 0 {
		limit = maxObjects
	}
	if n > limit {
		b.items = nil
		return fmt.Errorf("%d records of %d: %w", n, limit, fault.ErrNoMemory)
	}
	c := max(2*cap(b.items), n, minGrow)
	c = min(c, limit)
	items := make([]T, len(b.items), c)
	copy(items, b.items)
	b.items = items
	return nil
}

// Len is the number of records appended this frame.
func (b *Buffer[T]) Len() int {
	return len(b.items)
}

// Cap is the retained capacity.
func (b *Buffer[T]) Cap() int {
	return cap(b.items)
}

// Items returns the records of the current frame. The slice is only valid
// until the next Reset.
func (b *Buffer[T]) Items() []T {
	return b.items
}

// Bytes is the memory held by the backing array.
func (b *Buffer[T]) Bytes() int {
	var zero T
	return cap(b.items) * int(unsafe.Sizeof(zero))
}

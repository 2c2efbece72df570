package pylaunch

// BufferPool manages a fixed set of reusable byte slices for frame headers
// and small payloads. The channel-based design gives lock-free, concurrency
// safe Get and Put.
type BufferPool struct {
	pool    chan []byte
	bufSize int
}

// NewBufferPool creates a pool pre-populated with count buffers of bufSize
// bytes each.
func NewBufferPool(bufSize, count int) *BufferPool {
	bp := &BufferPool{
		pool:    make(chan []byte, count),
		bufSize: bufSize,
	}
	for i := 0; i < count; i++ {
		bp.pool <- make([]byte, bufSize)
	}
	return bp
}

// Get returns a buffer of length bufSize, allocating a fresh one if the pool
// is empty.
func (bp *BufferPool) Get() []byte {
	select {
	case buf := <-bp.pool:
		return buf
	default:
		return make([]byte, bp.bufSize)
	}
}

// Put returns a buffer to the pool. Buffers with the wrong capacity are
// discarded, as is any buffer that arrives while the pool is already full.
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.bufSize {
		return
	}
	select {
	case bp.pool <- buf[:bp.bufSize]:
	default:
	}
}

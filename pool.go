package screengrab

import "sync"

// pixelPool pools frame pixel buffers for a single live size. Callers tend
// to capture the same monitor repeatedly, so one size covers the common
// case; buffers of any other size are discarded.
var pixelPool = struct {
	pool sync.Pool
	size int
	mu   sync.Mutex
}{}

func getPixelBuf(size int) []byte {
	pixelPool.mu.Lock()
	pixelPool.size = size
	pixelPool.mu.Unlock()

	for {
		v := pixelPool.pool.Get()
		if v == nil {
			break
		}
		buf := v.([]byte)
		// The pool can hold stale sizes after a resolution change or a
		// capture of a different monitor.
		if len(buf) == size {
			return buf
		}
	}
	return make([]byte, size)
}

func putPixelBuf(buf []byte) {
	if len(buf) == 0 {
		return
	}
	pixelPool.mu.Lock()
	size := pixelPool.size
	pixelPool.mu.Unlock()
	if size > 0 && len(buf) != size {
		return
	}
	pixelPool.pool.Put(buf)
}

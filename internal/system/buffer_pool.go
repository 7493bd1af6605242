package system

import (
	"sync"
)

// FloatPool reuses float32 scratch buffers between blur passes so that
// redacting many regions does not churn the garbage collector.
// Buffers are bucketed by power-of-two capacity.
type FloatPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &FloatPool{
	pools: make(map[int]*sync.Pool),
}

// GetFloats returns a zeroed slice of length n from the shared pool.
func GetFloats(n int) []float32 {
	return globalPool.Get(n)
}

// PutFloats returns a slice obtained from GetFloats to the pool.
func PutFloats(buf []float32) {
	globalPool.Put(buf)
}

func (p *FloatPool) Get(n int) []float32 {
	if n <= 0 {
		return nil
	}
	bucket := bucketFor(n)
	pool := p.pool(bucket)

	bp := pool.Get().(*[]float32)
	buf := (*bp)[:n]
	clear(buf)
	return buf
}

func (p *FloatPool) Put(buf []float32) {
	if cap(buf) == 0 {
		return
	}
	bucket := cap(buf)
	if bucket != bucketFor(bucket) {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[bucket]
	p.mu.RUnlock()

	if exists {
		buf = buf[:cap(buf)]
		pool.Put(&buf)
	}
}

func (p *FloatPool) pool(bucket int) *sync.Pool {
	p.mu.RLock()
	pool, exists := p.pools[bucket]
	p.mu.RUnlock()
	if exists {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Double check
	pool, exists = p.pools[bucket]
	if !exists {
		pool = &sync.Pool{
			New: func() interface{} {
				buf := make([]float32, bucket)
				return &buf
			},
		}
		p.pools[bucket] = pool
	}
	return pool
}

func bucketFor(n int) int {
	b := 64
	for b < n {
		b <<= 1
	}
	return b
}

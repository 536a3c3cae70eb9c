package image

import (
	"image/png"
	"sync"
)

// encoderPool recycles PNG encoder scratch buffers between encodes.
//
// Thread safety: All methods are safe for concurrent use.
type encoderPool struct {
	pool sync.Pool
}

// Get implements png.EncoderBufferPool. A nil result makes the encoder
// allocate a fresh buffer.
func (p *encoderPool) Get() *png.EncoderBuffer {
	buf, _ := p.pool.Get().(*png.EncoderBuffer)
	return buf
}

// Put implements png.EncoderBufferPool.
func (p *encoderPool) Put(buf *png.EncoderBuffer) {
	if buf != nil {
		p.pool.Put(buf)
	}
}

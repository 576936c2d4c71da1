package tool

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// copyBufferSize is small enough that cancellation is noticed quickly on slow links.
const copyBufferSize = 256 * 1024

// CopyWithContext copies from src to dst while respecting context cancellation.
func CopyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	return copyChunks(ctx, dst, src, make([]byte, copyBufferSize), nil)
}

// RateLimitedCopy copies like CopyWithContext but never faster than bytesPerSecond.
// A non-positive limit copies unthrottled.
func RateLimitedCopy(ctx context.Context, dst io.Writer, src io.Reader, bytesPerSecond int64) (int64, error) {
	if bytesPerSecond <= 0 {
		return CopyWithContext(ctx, dst, src)
	}
	bufSize := copyBufferSize
	if bytesPerSecond < int64(bufSize) {
		bufSize = int(bytesPerSecond)
	}
	// burst equals the chunk size so WaitN never exceeds it
	limiter := rate.NewLimiter(rate.Limit(bytesPerSecond), bufSize)
	return copyChunks(ctx, dst, src, make([]byte, bufSize), limiter)
}

func copyChunks(ctx context.Context, dst io.Writer, src io.Reader, buf []byte, limiter *rate.Limiter) (int64, error) {
	var written int64
	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			if limiter != nil {
				if err := limiter.WaitN(ctx, nr); err != nil {
					return written, err
				}
			}
			nw, writeErr := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if writeErr == nil {
					writeErr = fmt.Errorf("invalid write result")
				}
			}
			written += int64(nw)
			if writeErr != nil {
				return written, writeErr
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}

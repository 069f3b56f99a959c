package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// TraceWriter appends JSON frames, one per line, to a zstd-compressed file.
// A nil *TraceWriter is valid and discards everything.
type TraceWriter struct {
	path  string
	every int64

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter creates dir/trace.jsonl.zst. every thins the trace to one
// frame per that many ticks. Returns nil if dir is empty (tracing disabled).
func NewTraceWriter(dir string, every int) (*TraceWriter, error) {
	if dir == "" {
		return nil, nil
	}
	if every < 1 {
		every = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	path := filepath.Join(dir, "trace.jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &TraceWriter{
		path:  path,
		every: int64(every),
		f:     f,
		enc:   enc,
		w:     bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Path returns the trace file path.
func (t *TraceWriter) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Wants reports whether the frame for tick should be written.
func (t *TraceWriter) Wants(tick int64) bool {
	return t != nil && tick%t.every == 0
}

// Write appends v as one JSON line.
func (t *TraceWriter) Write(v any) error {
	if t == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding trace frame: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == nil {
		return fmt.Errorf("trace %s: write after close", t.path)
	}
	if _, err := t.w.Write(b); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	if err := t.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Close flushes buffered frames and closes the file.
func (t *TraceWriter) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var firstErr error
	if t.w != nil {
		firstErr = t.w.Flush()
		t.w = nil
	}
	if t.enc != nil {
		if err := t.enc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.enc = nil
	}
	if t.f != nil {
		if err := t.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.f = nil
	}
	return firstErr
}

// ReadTrace decodes every frame of a trace file.
func ReadTrace[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var frames []T
	jd := json.NewDecoder(dec)
	for jd.More() {
		var v T
		if err := jd.Decode(&v); err != nil {
			return frames, fmt.Errorf("decoding trace frame %d: %w", len(frames), err)
		}
		frames = append(frames, v)
	}
	return frames, nil
}

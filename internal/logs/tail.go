package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	maxLineBytes = 1024 * 1024
	pollInterval = 250 * time.Millisecond
)

// Options controls a single Read.
type Options struct {
	// Offset is the byte position to resume from. Negative means "last Limit lines".
	Offset int64
	Limit  int
	// Match drops lines for which it returns false. Nil keeps everything.
	Match  Filter
}

// Chunk is the outcome of a Read: the matching lines and the offset to resume from.
type Chunk struct {
	Lines  []string
	Offset int64
}

// Read returns lines from path. A missing file yields an empty chunk at offset 0.
func Read(path string, opts Options) (Chunk, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Chunk{}, nil
		}
		return Chunk{Offset: opts.Offset}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return Chunk{Offset: opts.Offset}, fmt.Errorf("log path %q is a directory", path)
	}

	if opts.Offset < 0 {
		return readLast(path, opts.Limit, opts.Match)
	}
	offset := opts.Offset
	if offset > info.Size() {
		// Truncated or rotated underneath us; start over.
		offset = 0
	}
	return readForward(path, offset, opts.Match)
}

// Follow emits the last opts.Limit lines, then polls for appended lines and
// emits them until ctx ends. It returns nil on cancellation.
func Follow(ctx context.Context, path string, opts Options, emit func([]string) error) error {
	chunk, err := Read(path, opts)
	if err != nil {
		return err
	}
	if len(chunk.Lines) > 0 {
		if err := emit(chunk.Lines); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	offset := chunk.Offset
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		next, err := Read(path, Options{Offset: offset, Match: opts.Match})
		if err != nil {
			return err
		}
		offset = next.Offset
		if len(next.Lines) == 0 {
			continue
		}
		if err := emit(next.Lines); err != nil {
			return err
		}
	}
}

func readLast(path string, limit int, match Filter) (Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return Chunk{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return Chunk{}, fmt.Errorf("seek log file: %w", err)
		}
		return Chunk{Offset: end}, nil
	}

	ring := make([]string, limit)
	count, idx := 0, 0
	offset, err := scan(file, match, func(line string) {
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return Chunk{}, err
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return Chunk{Lines: lines, Offset: offset}, nil
}

func readForward(path string, offset int64, match Filter) (Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Chunk{}, nil
		}
		return Chunk{Offset: offset}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Chunk{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}
	var lines []string
	consumed, err := scan(file, match, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return Chunk{Offset: offset}, err
	}
	return Chunk{Lines: lines, Offset: offset + consumed}, nil
}

// scan feeds every complete line to keep and returns the bytes consumed. A
// trailing line without a newline is left for the next read so a record
// being written is never split.
func scan(r io.Reader, match Filter, keep func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			full := append([]byte(nil), line...)
			for errors.Is(err, bufio.ErrBufferFull) && len(full) < maxLineBytes {
				line, err = reader.ReadSlice('\n')
				full = append(full, line...)
			}
			line = full
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return consumed, nil
			}
			if errors.Is(err, bufio.ErrBufferFull) {
				return consumed, fmt.Errorf("read log file: line exceeds %d bytes", maxLineBytes)
			}
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		text := string(line[:len(line)-1])
		if match == nil || match(text) {
			keep(text)
		}
	}
}

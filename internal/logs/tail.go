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

const pollInterval = 250 * time.Millisecond

// TailResult holds the lines read from a log file and the offset of the
// file end, suitable for resuming with Follow.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail returns the last limit lines of the log file at path. A missing
// file is not an error; the result is empty with a zero offset. The file
// is scanned once with a ring buffer, so memory stays bounded by limit.
func Tail(path string, limit int) (TailResult, error) {
	var result TailResult

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("log path %q is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		result.Offset = info.Size()
		return result, nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return result, fmt.Errorf("determine log offset: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}

	result.Lines = lines
	result.Offset = offset
	return result, nil
}

// Follow polls the log file and calls emit for every line appended after
// offset, until ctx is done. A file that does not exist yet is waited on,
// and a shrinking file is treated as rotated and reread from the start.
func Follow(ctx context.Context, path string, offset int64, emit func(line string)) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			offset = 0
		case err != nil:
			return fmt.Errorf("stat log file: %w", err)
		default:
			if info.Size() < offset {
				offset = 0
			}
			lines, newOffset, err := readForward(path, offset)
			if err != nil {
				return err
			}
			for _, line := range lines {
				emit(line)
			}
			offset = newOffset
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func readForward(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	newOffset, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, fmt.Errorf("determine log offset: %w", err)
	}

	return lines, newOffset, nil
}

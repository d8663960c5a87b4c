package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// LevelFileWriter is a zerolog.LevelWriter that appends every event to
// <dir>/<level>.log. Files are opened on first use and kept open.
//
// Errors opening a file are swallowed: losing a file copy of a log line
// must not break the request that produced it. stdout still has it.
type LevelFileWriter struct {
	dir string

	mu    sync.Mutex
	files map[zerolog.Level]*os.File
}

// NewLevelFileWriter returns a writer rooted at dir. The directory is
// created lazily on the first write.
func NewLevelFileWriter(dir string) *LevelFileWriter {
	return &LevelFileWriter{
		dir:   dir,
		files: make(map[zerolog.Level]*os.File),
	}
}

// Write is used for events without a level; they land in info.log.
func (w *LevelFileWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.InfoLevel, p)
}

// WriteLevel appends p to the file of the given level.
func (w *LevelFileWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level == zerolog.NoLevel || level == zerolog.Disabled {
		level = zerolog.InfoLevel
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open(level)
	if err != nil {
		return len(p), nil
	}

	if _, err := f.Write(p); err != nil {
		return len(p), nil
	}
	return len(p), nil
}

func (w *LevelFileWriter) open(level zerolog.Level) (*os.File, error) {
	if f, ok := w.files[level]; ok {
		return f, nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(w.dir, level.String()+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	w.files[level] = f
	return f, nil
}

// Close closes every file opened so far.
func (w *LevelFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	for level, f := range w.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(w.files, level)
	}
	return firstErr
}

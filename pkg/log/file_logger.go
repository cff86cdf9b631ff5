package log

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// sessionEnd is the state a session returns to when it is torn down.
const sessionEnd = "IDLE"

// FileLogger appends trace events to a .plog file as a stream of CBOR
// events. Writes are buffered and the file is synced whenever a session
// returns to IDLE, an error event is logged, or the logger is closed, so a
// crash loses at most the tail of the running session.
//
// FileLogger is safe for concurrent use.
type FileLogger struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	buf    *bufio.Writer
	enc    *cbor.Encoder
	count  int
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it and its directory if
// needed.
func NewFileLogger(path string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &FileLogger{
		path: path,
		file: f,
		buf:  buf,
		enc:  newEncoder(buf),
	}, nil
}

// Log appends event. Write failures never reach the caller; the first one
// is kept and reported by Err.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.err = err
		return
	}
	l.count++

	if endsSession(event) || event.Error != nil {
		l.err = l.syncLocked()
	}
}

// Path returns the trace file path.
func (l *FileLogger) Path() string { return l.path }

// Count returns the number of events written.
func (l *FileLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Err returns the first write error, if any. Logging stops after it.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the file. Later Log calls are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	err := l.syncLocked()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func (l *FileLogger) syncLocked() error {
	if err := l.buf.Flush(); err != nil {
		return err
	}
	return l.file.Sync()
}

func endsSession(e Event) bool {
	return e.StateChange != nil && e.StateChange.NewState == sessionEnd
}

var _ Logger = (*FileLogger)(nil)

package exiftool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

var (
	// ErrInvalidArgument reports an argument that cannot be sent over the
	// line-based request channel.
	ErrInvalidArgument = errors.New("invalid exiftool argument")
	// ErrClosed is returned by Execute after Close.
	ErrClosed = errors.New("exiftool session closed")
)

// Session is a running "exiftool -stay_open True -@ -" process. Requests
// are written to its stdin one argument per line and answered on stdout,
// each response terminated by [Sentinel]. A Session is not safe for
// concurrent use.
type Session struct {
	stdin  io.WriteCloser
	resp   *responseReader
	wait   func() error
	once   sync.Once
	closed bool
}

// Open starts exiftool in stay-open mode. stderr receives the tool's
// warnings; nil discards them. The caller must Close the session, or use
// [With] which does so unconditionally.
func Open(ctx context.Context, executable string, stderr io.Writer) (*Session, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, fmt.Errorf("exiftool %q: %w", executable, err)
	}

	cmd := exec.CommandContext(ctx, path, "-stay_open", "True", "-@", "-")
	if stderr == nil {
		stderr = io.Discard
	}
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("exiftool stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("exiftool stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return newSession(stdin, stdout, cmd.Wait), nil
}

func newSession(stdin io.WriteCloser, stdout io.Reader, wait func() error) *Session {
	return &Session{
		stdin: stdin,
		resp:  newResponseReader(stdout),
		wait:  wait,
	}
}

// With opens a session, runs fn, and always closes the session afterwards,
// so the shutdown directive is sent even when fn fails or panics.
func With(ctx context.Context, executable string, stderr io.Writer, fn func(*Session) error) error {
	s, err := Open(ctx, executable, stderr)
	if err != nil {
		return err
	}
	return s.Use(fn)
}

// Use runs fn against s and closes s on the way out. The returned error
// joins fn's error with any shutdown error.
func (s *Session) Use(fn func(*Session) error) (err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}

// Execute sends one request and returns the response body preceding the
// sentinel.
func (s *Session) Execute(args ...string) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}

	var req strings.Builder
	for _, a := range args {
		if strings.ContainsAny(a, "\r\n") {
			return nil, fmt.Errorf("%w: %q contains a line break", ErrInvalidArgument, a)
		}
		req.WriteString(a)
		req.WriteByte('\n')
	}
	req.WriteString("-execute\n")

	if _, err := io.WriteString(s.stdin, req.String()); err != nil {
		return nil, fmt.Errorf("write exiftool request: %w", err)
	}
	return s.resp.next()
}

// Close asks exiftool to exit, closes its stdin and waits for it. Calling
// Close more than once is a no-op.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		s.closed = true
		_, werr := io.WriteString(s.stdin, "-stay_open\nFalse\n")
		cerr := s.stdin.Close()
		var waitErr error
		if s.wait != nil {
			waitErr = s.wait()
		}
		err = errors.Join(werr, cerr, waitErr)
	})
	return err
}

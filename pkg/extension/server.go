// Package extension speaks the extension line protocol over a pair of streams.
//
// Each request is one line. Plain lines are split on '|' into a command and
// its arguments; lines starting with '[' are read as a JSON array of strings,
// which lets arguments carry pipes. Every request gets exactly one reply line:
//
//	["ok","<command>"]
//	["ok","<command>",<result>]
//	["error","<command>","<message>"]
//
// Callbacks raised while a command runs are written as
//
//	[":CALLBACK:","<command>",<args>...]
package extension

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OCAP2/weather/internal/dispatcher"
)

// Built-in commands answered without the dispatcher.
const (
	CmdVersion   = ":VERSION:"
	CmdTimestamp = ":TIMESTAMP:"
	CmdCallback  = ":CALLBACK:"
)

const maxLineSize = 1 << 20

// ErrEmptyCommand is returned for a request line without a command.
var ErrEmptyCommand = errors.New("empty command")

// Server reads requests from in, dispatches them and writes replies to out.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	in         io.Reader
	log        *slog.Logger
	version    string
	now        func() time.Time

	mu  sync.Mutex
	out io.Writer
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the string returned by :VERSION:.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithClock replaces the clock used by :TIMESTAMP: and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server. The dispatcher may be filled with handlers after
// New returns, as long as that happens before Serve.
func New(d *dispatcher.Dispatcher, in io.Reader, out io.Writer, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		dispatcher: d,
		in:         in,
		out:        out,
		log:        log.With("component", "extension"),
		version:    "No version set",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve handles requests until in reaches EOF or ctx is cancelled.
// Requests are handled one at a time on the calling goroutine.
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading requests: %w", err)
					}
				default:
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := s.writeLine(s.Handle(line)); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
		}
	}
}

// Handle processes a single request line and returns the reply line.
func (s *Server) Handle(line string) string {
	command, args, err := parseRequest(line)
	if err != nil {
		return formatResponse(command, nil, err)
	}

	switch command {
	case CmdVersion:
		return formatResponse(command, s.version, nil)
	case CmdTimestamp:
		return formatResponse(command, strconv.FormatInt(s.now().UTC().UnixNano(), 10), nil)
	}

	if s.dispatcher == nil {
		return formatResponse(command, nil, &dispatcher.UnknownCommandError{Command: command})
	}

	result, err := s.dispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: s.now(),
	})
	var unknown *dispatcher.UnknownCommandError
	if errors.As(err, &unknown) {
		if near, ok := suggest(command, s.dispatcher.Commands()); ok {
			err = fmt.Errorf("%w, did you mean %s?", err, near)
		}
		s.log.Warn("Unknown command", "command", command, "error", err)
	}
	return formatResponse(command, result, err)
}

// Emit writes a callback line. It satisfies bridge.Emitter.
func (s *Server) Emit(command string, args ...any) error {
	payload := make([]any, 0, len(args)+2)
	payload = append(payload, CmdCallback, command)
	payload = append(payload, args...)

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding callback %s: %w", command, err)
	}
	return s.writeLine(string(b))
}

func (s *Server) writeLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.out, line+"\n")
	return err
}

func parseRequest(line string) (string, []string, error) {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "[") {
		var parts []string
		if err := json.Unmarshal([]byte(line), &parts); err != nil {
			return "", nil, fmt.Errorf("malformed request: %w", err)
		}
		if len(parts) == 0 || parts[0] == "" {
			return "", nil, ErrEmptyCommand
		}
		return parts[0], parts[1:], nil
	}

	parts := strings.Split(line, "|")
	if parts[0] == "" {
		return "", nil, ErrEmptyCommand
	}
	return parts[0], parts[1:], nil
}

// formatResponse renders a dispatcher result as a reply line.
func formatResponse(command string, result any, err error) string {
	if err != nil {
		return encode("error", command, err.Error())
	}
	if result == nil {
		return encode("ok", command)
	}
	b, merr := json.Marshal(result)
	if merr != nil {
		return encode("error", command, fmt.Sprintf("encoding result: %v", merr))
	}
	return `["ok",` + quote(command) + `,` + string(b) + `]`
}

func encode(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = quote(p)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

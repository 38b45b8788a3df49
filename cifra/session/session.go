package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/lucasspawn/cifra/cifra"
	"github.com/lucasspawn/cifra/cifra/record"
)

var errQuit = errors.New("session: quit")

var quitWords = map[string]bool{"sair": true, "quit": true, "exit": true, "q": true}

// Options configures a Session.
type Options struct {
	// Records receives every successful result. Nil disables persistence.
	Records *record.Writer
	// Color enables ANSI colours on the output.
	Color bool
	// ReadSecret reads key material without echo. Nil reads keys from the
	// regular input like any other field. It must read from the same source
	// as the session input; lines already buffered by the session (typed or
	// pasted ahead) are consumed from the buffer instead of calling ReadSecret.
	ReadSecret func() (string, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is a single-user prompt loop. It is not safe for concurrent use.
type Session struct {
	kit  *cifra.Toolkit
	in   *bufio.Reader
	out  io.Writer
	log  *zap.Logger
	opts Options

	header  *color.Color
	prompt  *color.Color
	success *color.Color
	failure *color.Color
	info    *color.Color

	// pending holds the result of a read that outlived its prompt.
	pending chan lineResult
}

// New creates a session reading from in and writing to out.
func New(kit *cifra.Toolkit, in io.Reader, out io.Writer, logger *zap.Logger, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		kit:     kit,
		in:      bufio.NewReader(in),
		out:     out,
		log:     logger,
		opts:    opts,
		header:  color.New(color.FgHiCyan, color.Bold),
		prompt:  color.New(color.FgHiYellow),
		success: color.New(color.FgHiGreen),
		failure: color.New(color.FgHiRed),
		info:    color.New(color.FgHiBlue),
	}
	for _, c := range []*color.Color{s.header, s.prompt, s.success, s.failure, s.info} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

type action struct {
	label string
	run   func(*Session, context.Context) error
}

var actions = []struct {
	key string
	action
}{
	{"1", action{"Decrypt AES-CBC", (*Session).decryptCBC}},
	{"2", action{"Encrypt AES-CBC", (*Session).encryptCBC}},
	{"3", action{"Encrypt AES-CTR", (*Session).encryptCTR}},
	{"4", action{"Decrypt AES-CTR", (*Session).decryptCTR}},
	{"5", action{"Diffie-Hellman key exchange", (*Session).exchange}},
	{"6", action{"Hex to Base64", (*Session).hexToBase64}},
	{"7", action{"Base64 to hex", (*Session).base64ToHex}},
}

// Run shows the menu until the user quits, input ends or ctx is cancelled.
// Quitting and end of input return nil; cancellation returns ctx.Err(),
// also while a prompt is waiting for input.
func (s *Session) Run(ctx context.Context) error {
	s.header.Fprintln(s.out, "=== cifra: AES and Diffie-Hellman ===")
	fmt.Fprintln(s.out, "Type 'sair' at any prompt to leave.")
	s.log.Debug("session started")

	for {
		err := ctx.Err()
		if err == nil {
			s.menu()
			var choice string
			choice, err = s.ask(ctx, "Option")
			if err == nil {
				err = s.dispatch(ctx, choice)
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			s.info.Fprintln(s.out, "Bye.")
			s.log.Debug("session finished")
			return nil
		case ctx.Err() != nil:
			fmt.Fprintln(s.out)
			s.log.Debug("session cancelled", zap.Error(err))
			return ctx.Err()
		default:
			return err
		}
	}
}

func (s *Session) menu() {
	fmt.Fprintln(s.out)
	s.header.Fprintln(s.out, strings.Repeat("=", 48))
	for _, a := range actions {
		fmt.Fprintf(s.out, "  %s) %s\n", a.key, a.label)
	}
	s.header.Fprintln(s.out, strings.Repeat("=", 48))
}

func (s *Session) dispatch(ctx context.Context, choice string) error {
	if choice == "" {
		return nil
	}
	for _, a := range actions {
		if a.key == choice {
			s.log.Debug("running action", zap.String("action", a.label))
			return a.run(s, ctx)
		}
	}
	s.failure.Fprintf(s.out, "Unknown option %q\n", choice)
	return nil
}

type lineResult struct {
	line string
	err  error
}

// await waits for read to finish or ctx to end. A read interrupted by ctx
// keeps running and its result is handed to the next readLine.
func (s *Session) await(ctx context.Context, ch chan lineResult) (lineResult, error) {
	select {
	case r := <-ch:
		return r, nil
	case <-ctx.Done():
		s.pending = ch
		return lineResult{}, ctx.Err()
	}
}

// readLine returns the next input line without its line terminator.
// A final line without a newline is returned before io.EOF.
func (s *Session) readLine(ctx context.Context) (string, error) {
	ch := s.pending
	s.pending = nil
	if ch == nil {
		ch = make(chan lineResult, 1)
		go func() {
			line, err := s.in.ReadString('\n')
			ch <- lineResult{line, err}
		}()
	}
	r, err := s.await(ctx, ch)
	if err != nil {
		return "", err
	}
	if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
		return "", r.err
	}
	return strings.TrimRight(r.line, "\r\n"), nil
}

func (s *Session) checkQuit(v string) (string, error) {
	if quitWords[strings.ToLower(strings.TrimSpace(v))] {
		return "", errQuit
	}
	return v, nil
}

// ask reads a trimmed field. Quit words end the session.
func (s *Session) ask(ctx context.Context, label string) (string, error) {
	s.prompt.Fprintf(s.out, "%s: ", label)
	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}
	return s.checkQuit(strings.TrimSpace(line))
}

// askText reads free text verbatim. Quit words are plain text here.
func (s *Session) askText(ctx context.Context, label string) (string, error) {
	s.prompt.Fprintf(s.out, "%s: ", label)
	return s.readLine(ctx)
}

// askSecret reads key material through ReadSecret when configured and no
// input is already buffered.
func (s *Session) askSecret(ctx context.Context, label string) (string, error) {
	if s.opts.ReadSecret == nil || s.pending != nil || s.in.Buffered() > 0 {
		return s.ask(ctx, label)
	}
	s.prompt.Fprintf(s.out, "%s: ", label)
	ch := make(chan lineResult, 1)
	go func() {
		v, err := s.opts.ReadSecret()
		ch <- lineResult{v, err}
	}()
	r, err := s.await(ctx, ch)
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}
	if r.err != nil {
		return "", r.err
	}
	return s.checkQuit(strings.TrimSpace(r.line))
}

func (s *Session) save(r record.Record) {
	if s.opts.Records == nil {
		return
	}
	path, err := s.opts.Records.Write(r)
	if err != nil {
		s.failure.Fprintf(s.out, "Could not save result: %v\n", err)
		s.log.Error("record write failed", zap.String("kind", string(r.Kind)), zap.Error(err))
		return
	}
	s.info.Fprintf(s.out, "Result saved to %s\n", path)
	s.log.Info("record saved", zap.String("kind", string(r.Kind)), zap.String("path", path))
}

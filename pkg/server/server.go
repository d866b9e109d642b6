package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordstore/internal/logger"
	"github.com/bastiangx/wordstore/internal/utils"
	"github.com/bastiangx/wordstore/pkg/config"
	"github.com/bastiangx/wordstore/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for the word store
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server answering from completer with limits from cfg.
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		completer: completer,
		config:    cfg,
		logger:    logger.New("server"),
	}
}

// Start serves requests from stdin until it is closed.
func (s *Server) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve decodes requests from r and writes one response per request to w.
// It returns nil on a clean end of input. A malformed message is answered with
// an error response and ends the stream, since msgpack framing cannot be recovered.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	s.logger.Debug("Starting server")

	dec := msgpack.NewDecoder(bufio.NewReader(r))
	out := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(out)

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			if sendErr := s.send(enc, out, CompletionError{Error: "invalid msgpack request", Code: 400}); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("decode request: %w", err)
		}

		s.requestCount++
		if err := s.send(enc, out, s.handle(req)); err != nil {
			return err
		}
	}
}

// send encodes one response and flushes it so the client sees it immediately
func (s *Server) send(enc *msgpack.Encoder, out *bufio.Writer, response any) error {
	if err := enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// handle dispatches a request on its action
func (s *Server) handle(req Request) any {
	switch req.Action {
	case "", ActionComplete:
		return s.handleComplete(req)
	case ActionInsert:
		return s.handleInsert(req)
	case ActionStats:
		return StatsResponse{ID: req.ID, Stats: s.completer.Stats()}
	default:
		s.logger.Warn("Unknown action", "id", req.ID, "action", req.Action)
		return CompletionError{ID: req.ID, Error: fmt.Sprintf("unknown action: %s", req.Action), Code: 400}
	}
}

func (s *Server) handleComplete(req Request) any {
	if n := utils.PrefixLen(req.Prefix); n > s.config.Server.MaxPrefix {
		s.logger.Debug("Prefix too long", "id", req.ID, "len", n)
		return CompletionError{
			ID:    req.ID,
			Error: fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix),
			Code:  400,
		}
	}

	limit := req.Limit
	switch {
	case limit < 0:
		return CompletionError{ID: req.ID, Error: "limit must not be negative", Code: 400}
	case limit == 0:
		limit = s.config.Server.DefaultLimit
	case limit > s.config.Server.MaxLimit:
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Count: sg.Frequency, Rank: ranks[i]}
	}

	s.logger.Debug("Completed", "id", req.ID, "prefix", req.Prefix, "count", len(out), "took", elapsed)

	return CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	}
}

func (s *Server) handleInsert(req Request) any {
	if len(req.Words) == 0 {
		return CompletionError{ID: req.ID, Error: "insert requires at least one word", Code: 400}
	}
	n := s.completer.AddWords(req.Words...)
	s.logger.Debug("Inserted", "id", req.ID, "words", n)
	return InsertResponse{ID: req.ID, Status: "ok", Inserted: n}
}

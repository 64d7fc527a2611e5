// Package api serves the parser over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/smsparse/internal/category"
	"github.com/cleared-dev/smsparse/internal/id"
	"github.com/cleared-dev/smsparse/internal/logger"
	"github.com/cleared-dev/smsparse/internal/model"
	"github.com/cleared-dev/smsparse/internal/parser"
	"github.com/cleared-dev/smsparse/internal/report"
)

// Request limits.
const (
	MaxTextBytes    = 4096
	MaxBatchSize    = 1000
	maxRequestBytes = MaxBatchSize*MaxTextBytes + 64*1024
)

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is returned by POST /api/parse.
type ParseResponse struct {
	Recognized  bool                `json:"recognized"`
	Transaction *report.Transaction `json:"transaction,omitempty"`
}

// BatchRequest is the body of POST /api/parse/batch.
type BatchRequest struct {
	Messages []string `json:"messages"`
}

// BatchResult is one entry of a BatchResponse, in request order.
type BatchResult struct {
	Index       int                 `json:"index"`
	Recognized  bool                `json:"recognized"`
	Transaction *report.Transaction `json:"transaction,omitempty"`
}

// BatchResponse is returned by POST /api/parse/batch.
type BatchResponse struct {
	RunID      string        `json:"runId"`
	Count      int           `json:"count"`
	Recognized int           `json:"recognized"`
	Results    []BatchResult `json:"results"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the HTTP handlers.
type Server struct {
	parser  *parser.Parser
	log     zerolog.Logger
	version string
}

// NewServer creates a Server.
func NewServer(p *parser.Parser, log zerolog.Logger, version string) *Server {
	return &Server{parser: p, log: log, version: version}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "smsparse",
		BodyLimit:             maxRequestBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Use(recover.New())
	app.Use(s.requestLogger)

	app.Get("/api/health", s.handleHealth)
	app.Get("/api/categories", s.handleCategories)
	app.Get("/api/categories/:id", s.handleCategory)
	app.Post("/api/parse", s.handleParse)
	app.Post("/api/parse/batch", s.handleBatch)
	return app
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	reqLog := s.log.With().Str("method", c.Method()).Str("path", c.Path()).Logger()
	c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}
	ev := reqLog.Info()
	if status >= fiber.StatusInternalServerError {
		ev = reqLog.Warn()
	}
	ev.Int("status", status).Dur("duration", time.Since(start)).Msg("request")
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(category.All())
}

func (s *Server) handleCategory(c *fiber.Ctx) error {
	cat, ok := category.Lookup(model.Category(c.Params("id")))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown category %q", c.Params("id")))
	}
	return c.JSON(cat)
}

func (s *Server) handleParse(c *fiber.Ctx) error {
	var req ParseRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := checkText(req.Text); err != nil {
		return err
	}

	res, ok := s.parser.Parse(c.UserContext(), req.Text)
	return c.JSON(ParseResponse{Recognized: ok, Transaction: transaction(res, ok)})
}

func (s *Server) handleBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if len(req.Messages) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "messages must not be empty")
	}
	if len(req.Messages) > MaxBatchSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("at most %d messages per batch", MaxBatchSize))
	}
	for i, text := range req.Messages {
		if err := checkText(text); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("messages[%d]: %s", i, err.Error()))
		}
	}

	runID := id.NewRunID()
	ctx := logger.WithContext(c.UserContext(), logger.FromContext(c.UserContext()).With().Str("run_id", runID).Logger())
	outcomes, err := s.parser.ParseAll(ctx, req.Messages)
	if err != nil {
		return fmt.Errorf("parsing batch: %w", err)
	}

	resp := BatchResponse{RunID: runID, Count: len(outcomes), Results: make([]BatchResult, len(outcomes))}
	for i, o := range outcomes {
		if o.OK {
			resp.Recognized++
		}
		resp.Results[i] = BatchResult{Index: i, Recognized: o.OK, Transaction: transaction(o.Result, o.OK)}
	}
	return c.JSON(resp)
}

func decode(c *fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	return nil
}

func checkText(text string) error {
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text must not be empty")
	}
	if len(text) > MaxTextBytes {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("text longer than %d bytes", MaxTextBytes))
	}
	return nil
}

func transaction(r parser.Result, ok bool) *report.Transaction {
	if !ok {
		return nil
	}
	t := report.NewTransaction(r)
	return &t
}


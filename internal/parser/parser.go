// Package parser turns raw notification text into classified transactions.
//
// It identifies the sending institution, runs the field extractor with that
// institution's profile (or the generic rules) and, when a counterparty was
// named, classifies it into a spending category.
package parser

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/smsparse/internal/category"
	"github.com/cleared-dev/smsparse/internal/extract"
	"github.com/cleared-dev/smsparse/internal/id"
	"github.com/cleared-dev/smsparse/internal/logger"
	"github.com/cleared-dev/smsparse/internal/model"
	"github.com/cleared-dev/smsparse/internal/source"
)

// Result is one accepted transaction.
type Result struct {
	Ref       string
	Candidate model.Candidate
	// Category is nil when the message named no counterparty.
	Category *model.CategoryResult
}

// Outcome pairs an input message with its parse result. OK is false for
// messages that are not transactions.
type Outcome struct {
	Text   string
	Result Result
	OK     bool
}

// Options configures a Parser.
type Options struct {
	Clock          func() time.Time
	CascadeGeneric bool
	// Registry defaults to extract.DefaultRegistry().
	Registry *extract.Registry
	// Workers bounds ParseAll concurrency. Defaults to GOMAXPROCS.
	Workers int
}

// Parser is safe for concurrent use.
type Parser struct {
	ext      *extract.Extractor
	registry *extract.Registry
	workers  int
}

// New creates a Parser.
func New(opts Options) *Parser {
	reg := opts.Registry
	if reg == nil {
		reg = extract.DefaultRegistry()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Parser{
		ext:      extract.New(extract.Options{Clock: opts.Clock, CascadeGeneric: opts.CascadeGeneric}),
		registry: reg,
		workers:  workers,
	}
}

// Parse extracts a transaction from text. ok is false when text is not a
// recognizable transaction; that is never reported as an error.
func (p *Parser) Parse(ctx context.Context, text string) (Result, bool) {
	log := logger.FromContext(ctx)
	ref := id.MessageRef(text)

	var profile *extract.Profile
	if key, ok := source.Identify(text); ok {
		if prof, found := p.registry.Get(key); found {
			profile = &prof
		} else {
			log.Warn().Str("ref", ref).Str("institution", string(key)).Msg("no profile registered, using generic rules")
		}
	}

	c, ok := p.ext.Extract(text, profile)
	if !ok {
		ev := log.Debug().Str("ref", ref)
		if profile != nil {
			ev = ev.Str("institution", string(profile.Key))
		}
		ev.Msg("not a transaction")
		return Result{}, false
	}

	res := Result{Ref: ref, Candidate: c}
	if c.HasCounterparty() {
		cat := category.Classify(c.Counterparty)
		res.Category = &cat
	}

	log.Debug().
		Str("ref", ref).
		Str("institution", c.Institution).
		Str("rule", c.Rule).
		Str("direction", string(c.Direction)).
		Bool("balance", c.Balance.Valid).
		Msg("transaction extracted")
	return res, true
}

// ParseAll parses texts concurrently and returns one Outcome per input, in
// input order. It stops early only when ctx is cancelled.
func (p *Parser) ParseAll(ctx context.Context, texts []string) ([]Outcome, error) {
	out := make([]Outcome, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, ok := p.Parse(ctx, text)
			out[i] = Outcome{Text: text, Result: res, OK: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accepted filters outcomes down to the recognized transactions.
func Accepted(outcomes []Outcome) []Result {
	var out []Result
	for _, o := range outcomes {
		if o.OK {
			out = append(out, o.Result)
		}
	}
	return out
}

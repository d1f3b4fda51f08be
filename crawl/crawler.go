package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
)

// StopReason describes why a crawl ended.
type StopReason string

const (
	// EmptyStop means the source returned a page with no items.
	EmptyStop StopReason = "empty"

	// NoCursorStop means the last page carried no continuation cursor.
	NoCursorStop StopReason = "no_cursor"

	// ErrorStop means a fetch, process or checkpoint step failed.
	ErrorStop StopReason = "error"

	// Interrupted means the context was cancelled mid-crawl.
	Interrupted StopReason = "interrupted"
)

// Paginator fetches one page of items starting at a cursor.
type Paginator interface {
	FetchPage(ctx context.Context, cursor core.Cursor) (*core.Page, error)
}

// BatchUpserter embeds and stores one page of items.
type BatchUpserter interface {
	UpsertBatch(ctx context.Context, items []core.RawItem) (int, error)
}

// Pacer decides how long the crawl waits between requests and pages.
type Pacer interface {
	AfterRequest(ctx context.Context) error
	AfterPage(ctx context.Context) error
}

// Result summarizes a finished crawl.
type Result struct {
	Reason   StopReason
	Pages    int
	Requests int
	Upserted int

	// Cursor is the last cursor persisted to the cursor store.
	Cursor core.Cursor
}

// Crawler walks the source page by page, storing every item and saving the
// cursor after each page so an interrupted crawl resumes where it left off.
type Crawler struct {
	source   Paginator
	cursors  storage.CursorStore
	upserter BatchUpserter
	pacer    Pacer
	progress *ProgressTracker
	logger   *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler) error

// WithThrottle sets the pacer used between requests and pages.
// Default is NewThrottle() with the standard limits.
func WithThrottle(p Pacer) Option {
	return func(c *Crawler) error {
		if p != nil {
			c.pacer = p
		}
		return nil
	}
}

// WithProgress writes a progress line to w every interval records.
func WithProgress(w io.Writer, interval int) Option {
	return func(c *Crawler) error {
		if w != nil {
			c.progress = NewProgressTracker(w, interval)
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCrawler creates a crawler reading from source and writing through upserter.
func NewCrawler(source Paginator, cursors storage.CursorStore, upserter BatchUpserter, opts ...Option) (*Crawler, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if cursors == nil {
		return nil, ErrCursorStoreRequired
	}
	if upserter == nil {
		return nil, ErrUpserterRequired
	}

	c := &Crawler{
		source:   source,
		cursors:  cursors,
		upserter: upserter,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.pacer == nil {
		c.pacer = NewThrottle(WithThrottleLogger(c.logger))
	}
	c.logger = c.logger.With("component", "crawler")
	return c, nil
}

// Run crawls until the source is exhausted, a step fails, or ctx is
// cancelled. The cursor is persisted after every stored page and once more
// on the way out of a failed or interrupted run. Cancellation is not an
// error: it returns a Result with Reason Interrupted and a nil error.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	cursor := c.cursors.Load(ctx)
	res := &Result{Cursor: cursor}

	if c.progress != nil {
		c.progress.Start()
		defer c.progress.Finish()
	}

	c.logger.Info("starting crawl", "cursor", cursor)

	for {
		if err := ctx.Err(); err != nil {
			return c.halt(ctx, res, cursor, err)
		}

		page, err := c.source.FetchPage(ctx, cursor)
		if err != nil {
			return c.halt(ctx, res, cursor, fmt.Errorf("fetching page: %w", err))
		}
		res.Requests++

		if err := c.pacer.AfterRequest(ctx); err != nil {
			return c.halt(ctx, res, cursor, err)
		}

		if len(page.Items) == 0 {
			c.logger.Info("no more items returned, stopping")
			if err := c.checkpoint(ctx, res, page.Next); err != nil {
				if ctx.Err() != nil {
					return c.halt(ctx, res, page.Next, err)
				}
				return c.halt(ctx, res, cursor, err)
			}
			return c.finish(res, EmptyStop), nil
		}

		n, err := c.upserter.UpsertBatch(ctx, page.Items)
		if err != nil {
			return c.halt(ctx, res, cursor, fmt.Errorf("processing page: %w", err))
		}
		res.Pages++
		res.Upserted += n
		if c.progress != nil {
			c.progress.AddPage(n)
		}
		c.logger.Info("page stored", "count", n, "total", res.Upserted)

		cursor = page.Next
		if err := c.checkpoint(ctx, res, cursor); err != nil {
			// the page is stored, so an interrupt still flushes its cursor
			if ctx.Err() != nil {
				return c.halt(ctx, res, cursor, err)
			}
			c.logger.Error("crawl failed", "cursor", cursor, "error", err)
			return c.finish(res, ErrorStop), err
		}

		if cursor.IsZero() {
			c.logger.Info("no next cursor, stopping")
			return c.finish(res, NoCursorStop), nil
		}

		if err := c.pacer.AfterPage(ctx); err != nil {
			return c.halt(ctx, res, cursor, err)
		}
	}
}

func (c *Crawler) checkpoint(ctx context.Context, res *Result, cursor core.Cursor) error {
	if err := c.cursors.Save(ctx, cursor); err != nil {
		return fmt.Errorf("saving cursor: %w", err)
	}
	res.Cursor = cursor
	return nil
}

// halt saves the best known cursor and classifies the stop. The save uses a
// context detached from cancellation so an interrupt still checkpoints.
func (c *Crawler) halt(ctx context.Context, res *Result, cursor core.Cursor, cause error) (*Result, error) {
	saveErr := c.checkpoint(context.WithoutCancel(ctx), res, cursor)

	if ctx.Err() != nil {
		c.logger.Info("crawl interrupted", "cursor", cursor)
		c.finish(res, Interrupted)
		return res, saveErr
	}

	c.logger.Error("crawl failed", "cursor", cursor, "error", cause)
	c.finish(res, ErrorStop)
	return res, errors.Join(cause, saveErr)
}

func (c *Crawler) finish(res *Result, reason StopReason) *Result {
	res.Reason = reason
	c.logger.Info("crawl finished",
		"reason", reason,
		"pages", res.Pages,
		"requests", res.Requests,
		"upserted", res.Upserted,
		"cursor", res.Cursor)
	return res
}

// Package viewer hosts the selection engine in a terminal: it owns the
// screen, the simulated playback clock and the highlight list, and feeds
// pointer and keyboard events to the engine.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"transcriptview/internal/config"
	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/scroll"
	"transcriptview/internal/selection"
	"transcriptview/internal/transcript"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

// defaultWidth lays the transcript out before the terminal size is known.
const defaultWidth = 80

// Options configures a Session.
type Options struct {
	Config     *config.Config
	Highlights []highlight.Highlight

	// At and Word form a deep link: playback starts at the first word
	// matching Word in the sentence after At, or at At when Word is empty.
	At   float64
	Word string

	Play   bool
	Logger *slog.Logger
}

// tickEvent advances playback.
type tickEvent struct{ when time.Time }

func (e *tickEvent) When() time.Time { return e.when }

// settleEvent fires once resizing has stopped.
type settleEvent struct{ when time.Time }

func (e *settleEvent) When() time.Time { return e.when }

var writeClipboard = clipboard.WriteAll

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error { return writeClipboard(text) }

// Session is one interactive viewing of a transcript.
type Session struct {
	cfg *config.Config
	log *slog.Logger
	now func() time.Time

	transcript *transcript.Transcript
	duration   float64
	store      *highlight.Store
	engine     *selection.Engine
	policy     *scroll.Policy
	clock      *Clock
	grid       *layout.Grid

	screen        tcell.Screen
	width, height int
	scrollTop     int
	pressed       bool
	readOnly      bool
	button        layout.Rect
	buttonShown   bool
	buttonOnTop   bool
	status        string

	events chan tcell.Event
	resize *Debouncer
}

// New prepares a session over t. Nothing is drawn until Run.
func New(t *transcript.Transcript, opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		cfg:        cfg,
		log:        logger,
		now:        time.Now,
		transcript: t,
		store:      highlight.NewStore(opts.Highlights),
		policy:     scroll.New(cfg.Scroll, cfg.Timing),
		clock:      NewClock(cfg.PlaybackRate),
		readOnly:   cfg.ReadOnly,
		width:      defaultWidth,
	}
	for _, w := range t.Words() {
		s.duration = max(s.duration, w.EndTime)
	}
	s.grid = layout.NewGrid(t, cfg.Layout, s.layoutWidth())
	s.engine = selection.New(t, s.grid, s, selection.Options{
		ReadOnly:  cfg.ReadOnly,
		Logger:    logger.With("component", "selection"),
		Clipboard: systemClipboard{},
	})
	s.engine.SetHighlights(s.store.List())

	start := opts.At
	if opts.Word != "" {
		if ts := transcript.TimestampForWord(t, opts.Word, opts.At); ts > 0 {
			start = ts
		} else {
			logger.Warn("deep link word not found", "word", opts.Word, "from", opts.At)
		}
	}
	if start > 0 || opts.Word != "" {
		s.clock.Seek(start)
		s.policy.Force()
	}
	if opts.Play {
		s.clock.Play(s.now())
	}
	return s
}

// Run draws the session on screen and processes events until the user
// quits or ctx is done. Terminal events and playback ticks are fanned
// into one channel and handled in order.
func (s *Session) Run(ctx context.Context, screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnablePaste()
	s.attach(screen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.events = make(chan tcell.Event)
	s.resize = NewDebouncer(s.cfg.Timing.ResizeDebounce, func() {
		s.post(ctx, &settleEvent{when: time.Now()})
	})
	defer s.resize.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			if !s.post(gctx, ev) {
				return nil
			}
		}
	})
	g.Go(func() error {
		ticker := time.NewTicker(s.cfg.Timing.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if !s.post(gctx, &tickEvent{when: now}) {
					return nil
				}
			}
		}
	})
	g.Go(func() error {
		defer screen.Fini()
		defer cancel()
		s.log.Info("session started", "words", len(s.transcript.Words()), "highlights", len(s.store.List()))
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-s.events:
				if s.handle(ev) {
					s.log.Info("session ended", "highlights", len(s.store.List()))
					return nil
				}
				s.draw()
			}
		}
	})
	return g.Wait()
}

func (s *Session) post(ctx context.Context, ev tcell.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// attach binds the session to an initialised screen and draws it once.
func (s *Session) attach(screen tcell.Screen) {
	s.screen = screen
	s.width, s.height = screen.Size()
	s.relayout()
	s.follow(s.now())
	s.draw()
}

// Highlights returns the current highlight list.
func (s *Session) Highlights() []highlight.Highlight { return s.store.List() }

// CreateHighlight adds a highlight for a confirmed range.
func (s *Session) CreateHighlight(startWordID, endWordID int) {
	h := s.store.Create(startWordID, endWordID)
	s.log.Info("clip created", "id", h.ID, "start", startWordID, "end", endWordID)
	s.status = "clip created"
	s.engine.SetHighlights(s.store.List())
}

// UpdateHighlight moves the bounds of a resized highlight.
func (s *Session) UpdateHighlight(id string, startWordID, endWordID int) {
	if err := s.store.Update(id, startWordID, endWordID); err != nil {
		s.log.Warn("update dropped", "err", err)
		return
	}
	s.status = "clip updated"
	s.engine.SetHighlights(s.store.List())
}

// Seek moves playback to a clicked word and hands scrolling back to the
// policy.
func (s *Session) Seek(ts float64) {
	s.clock.Seek(ts)
	s.policy.Resume()
	s.status = "seek " + transcript.FormatSeconds(ts)
}

func (s *Session) layoutWidth() int {
	if s.cfg.Layout.Width > 0 {
		return s.cfg.Layout.Width
	}
	return s.width
}

func (s *Session) panelHeight() int {
	return max(s.height-1, 1)
}

func (s *Session) relayout() {
	s.grid = layout.NewGrid(s.transcript, s.cfg.Layout, s.layoutWidth())
	s.engine.SetLayout(s.grid)
	s.scrollTo(s.scrollTop)
	s.log.Debug("layout rebuilt", "width", s.grid.Width(), "rows", s.grid.Height())
}

func (s *Session) scrollTo(top int) {
	limit := max(s.grid.Height()-s.panelHeight(), 0)
	s.scrollTop = min(max(top, 0), limit)
}

// activeRect returns the active word's box in document rows.
func (s *Session) activeRect() (layout.Rect, bool) {
	aw, ok := transcript.Locate(s.transcript, s.clock.Position())
	if !ok {
		return layout.Rect{}, false
	}
	rects, err := s.grid.RectsForRange(
		layout.Anchor{Sentence: aw.Sentence.ID, Offset: aw.StartOffset},
		layout.Anchor{Sentence: aw.Sentence.ID, Offset: aw.EndOffset},
	)
	if err != nil || len(rects) == 0 {
		return layout.Rect{}, false
	}
	return layout.Union(rects), true
}

// follow applies the auto-scroll policy to the current playhead.
func (s *Session) follow(now time.Time) {
	rect, ok := s.activeRect()
	d := s.policy.Decide(scroll.Input{
		Word:        rect,
		Active:      ok,
		ScrollTop:   s.scrollTop,
		PanelHeight: s.panelHeight(),
		Playing:     s.clock.Playing(),
		Now:         now,
	})
	if d.Scroll {
		s.scrollTo(d.ScrollTo)
	}
	s.buttonShown = d.ShowButton
	s.buttonOnTop = d.ButtonOnTop
}

// jumpToActive scrolls to the active word on request.
func (s *Session) jumpToActive() {
	s.policy.Resume()
	if rect, ok := s.activeRect(); ok {
		s.scrollTo(s.policy.Target(rect))
	}
	s.buttonShown = false
}

// Package editor is a small terminal host for the checking pipeline: a
// single textarea-backed buffer, live underlines as you type, and a
// correction menu on demand.
package editor

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/field"
	"github.com/redlinehq/redline/internal/highlight"
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/notify"
	"github.com/redlinehq/redline/internal/page"
	"github.com/redlinehq/redline/internal/settings"
	"github.com/redlinehq/redline/internal/stats"
	"github.com/redlinehq/redline/internal/suggest"
)

// ColumnWidth caps the text column; wider terminals centre it.
const ColumnWidth = 60

// Config carries the shared pipeline pieces into the editor.
type Config struct {
	Path     string
	Dict     *dictionary.Dictionary
	Store    *dictionary.Store
	Ranker   *suggest.Ranker
	Checker  *checker.Checker
	Settings *settings.Manager
}

// Editor owns the terminal, the buffer and the page document the engine
// checks against. The buffer is the source of truth; every edit is mirrored
// into the document's textarea so the coordinator sees it.
type Editor struct {
	cfg  Config
	term *Terminal
	buf  *Buffer

	doc   *page.Document
	el    *page.Node
	hl    *highlight.Renderer
	coord *field.Coordinator
	stats *stats.Recorder

	renderer *Renderer
	scroll   int
	margin   int
	colWidth int
	menuSel  int

	mu          sync.Mutex
	status      string
	statusUntil time.Time

	redraw chan struct{}
	work   chan func()
	quit   bool
}

// Run opens path in the editor and blocks until the user quits.
func Run(cfg Config) error {
	e := &Editor{
		cfg:      cfg,
		buf:      NewBuffer(cfg.Path),
		renderer: NewRenderer(),
		stats:    stats.New(),
		redraw:   make(chan struct{}, 1),
		work:     make(chan func(), 16),
	}
	if err := e.buf.Load(); err != nil {
		return err
	}

	e.doc = page.NewDocument("local")
	e.el = page.NewElement("textarea")
	e.el.SetStyle(page.Style{CharWidth: 1, LineHeight: 1})
	e.doc.Root().AppendChild(e.el)
	e.hl = highlight.NewRenderer(e.doc)

	e.coord = field.NewCoordinator(field.Config{
		Document:  e.doc,
		Checker:   cfg.Checker,
		Dict:      cfg.Dict,
		DictStore: cfg.Store,
		Ranker:    cfg.Ranker,
		Settings:  cfg.Settings,
		Decorator: &redrawDecorator{hl: e.hl, ping: e.redraw},
		Stats:     e.stats,
		Notifier:  notify.Func(e.notify),
		Scheduler: loopScheduler{work: e.work},
	})
	e.coord.Start()

	// Pick up external edits to the custom dictionary while editing. The
	// callback arrives on the watch goroutine, so the actual work is posted
	// to the editor loop.
	if cfg.Store != nil {
		watchErr := cfg.Store.Watch(func(words []string) {
			e.work <- func() {
				cfg.Dict.SetCustom(words)
				if cfg.Ranker != nil {
					cfg.Ranker.Retrain()
				}
				e.coord.RecheckAll()
			}
		})
		if watchErr != nil {
			log.Warn(log.CatDict, "dictionary watch unavailable", "error", watchErr.Error())
		} else {
			defer cfg.Store.Close()
		}
	}

	t, err := NewTerminal()
	if err != nil {
		return err
	}
	e.term = t
	defer t.Restore()

	e.layout()
	e.syncField(0)
	e.render()

	keys := make(chan Key)
	readErr := make(chan error, 1)
	go func() {
		for {
			k, err := t.ReadKey()
			if err != nil {
				readErr <- err
				return
			}
			keys <- k
		}
	}()

	for !e.quit {
		select {
		case <-t.SigwinchChan():
			if t.Resize() {
				e.layout()
				e.render()
			}
		case <-e.redraw:
			e.render()
		case fn := <-e.work:
			fn()
			e.render()
		case err := <-readErr:
			return err
		case k := <-keys:
			e.handleKey(k)
			if !e.quit {
				e.render()
			}
		}
	}
	log.Info(log.CatEditor, "session ended",
		"corrections", e.stats.Snapshot().CorrectionsMade)
	return nil
}

// layout sizes the textarea to the visible text column.
func (e *Editor) layout() {
	w, h := e.term.Size()
	e.colWidth = w
	e.margin = 0
	if w > ColumnWidth {
		e.colWidth = ColumnWidth
		e.margin = (w - ColumnWidth) / 2
	}
	e.el.SetBounds(page.Rect{
		Left:   float64(e.margin),
		Top:    0,
		Width:  float64(e.colWidth),
		Height: float64(h - 1),
	})
}

// syncField mirrors the buffer into the page textarea and fires the input
// event the coordinator debounces on. The dispatch may auto-correct the
// field in place, so the result is pulled straight back into the buffer.
func (e *Editor) syncField(r rune) {
	e.el.SetValue(e.buf.Text)
	e.el.SetCaret(e.buf.Caret)
	e.el.Dispatch("input", r)
	e.syncFromField()
}

// syncFromField pulls a correction the pipeline applied back into the
// buffer.
func (e *Editor) syncFromField() {
	if e.el.Value() != e.buf.Text {
		e.buf.Text = e.el.Value()
		e.buf.Caret = e.el.Caret()
		e.buf.Dirty = true
	}
}

func (e *Editor) handleKey(k Key) {
	if e.hl.Menu() != nil {
		e.handleMenuKey(k)
		return
	}

	switch k.Type {
	case KeyRune:
		e.buf.Insert(k.Rune)
		e.syncField(k.Rune)
	case KeyEnter:
		e.buf.Insert('\n')
		e.syncField('\n')
	case KeyBackspace:
		e.buf.DeleteBack()
		e.syncField(0)
	case KeyDelete:
		e.buf.DeleteForward()
		e.syncField(0)
	case KeyLeft:
		e.buf.MoveCaret(-1)
		e.el.SetCaret(e.buf.Caret)
	case KeyRight:
		e.buf.MoveCaret(1)
		e.el.SetCaret(e.buf.Caret)
	case KeyUp:
		e.moveVertical(-1)
	case KeyDown:
		e.moveVertical(1)
	case KeyHome:
		e.moveLineEdge(true)
	case KeyEnd:
		e.moveLineEdge(false)
	case KeyCtrlS:
		if err := e.buf.Save(); err != nil {
			e.notify(notify.Notification{Message: "save failed: " + err.Error(), Severity: notify.Error})
		} else {
			e.notify(notify.Notification{Message: "saved " + e.buf.Filename, Severity: notify.Success})
		}
	case KeyCtrlR:
		e.openMenuAtCaret()
	case KeyCtrlG:
		e.toggleGrammar()
	case KeyCtrlQ, KeyEscape:
		e.quit = true
	}
}

func (e *Editor) handleMenuKey(k Key) {
	menu := e.hl.Menu()
	items := menu.Children()
	switch k.Type {
	case KeyUp:
		if e.menuSel > 0 {
			e.menuSel--
		}
	case KeyDown:
		if e.menuSel < len(items)-1 {
			e.menuSel++
		}
	case KeyEnter:
		if e.menuSel < len(items) {
			items[e.menuSel].Dispatch("click", 0)
			e.syncFromField()
		}
	case KeyEscape:
		e.hl.CloseMenu()
	}
}

// openMenuAtCaret activates the decoration covering the caret, which opens
// its correction menu.
func (e *Editor) openMenuAtCaret() {
	overlay := e.hl.Overlay(e.el)
	if overlay == nil {
		e.notify(notify.Notification{Message: "nothing to correct here", Severity: notify.Info})
		return
	}
	caret := e.buf.Caret
	for _, mark := range overlay.Children() {
		start, _ := strconv.Atoi(mark.Attr(highlight.AttrStart))
		end, _ := strconv.Atoi(mark.Attr(highlight.AttrEnd))
		if caret >= start && caret <= end {
			e.menuSel = 0
			mark.Dispatch("click", 0)
			return
		}
	}
	e.notify(notify.Notification{Message: "nothing to correct here", Severity: notify.Info})
}

func (e *Editor) toggleGrammar() {
	if e.cfg.Settings == nil {
		return
	}
	var on bool
	err := e.cfg.Settings.Update(func(g *settings.Global) {
		g.GrammarCheck = !g.GrammarCheck
		on = g.GrammarCheck
	})
	if err != nil {
		e.notify(notify.Notification{Message: "settings save failed: " + err.Error(), Severity: notify.Error})
		return
	}
	msg := "grammar rules off"
	if on {
		msg = "grammar rules on"
	}
	e.notify(notify.Notification{Message: msg, Severity: notify.Info})
	e.coord.RecheckAll()
}

// notify shows a transient message in the status bar.
func (e *Editor) notify(n notify.Notification) {
	n = notify.Fill(n)
	e.mu.Lock()
	e.status = n.Message
	e.statusUntil = time.Now().Add(n.Duration)
	e.mu.Unlock()
	select {
	case e.redraw <- struct{}{}:
	default:
	}
}

func (e *Editor) statusMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != "" && time.Now().After(e.statusUntil) {
		e.status = ""
	}
	return e.status
}

// moveVertical moves the caret a display line up or down, holding the
// column where it can.
func (e *Editor) moveVertical(dir int) {
	lines := e.el.LayoutLines()
	idx, col := locateCaret(lines, e.buf.Caret)
	target := idx + dir
	if target < 0 || target >= len(lines) {
		return
	}
	tcol := col
	if tcol > len(lines[target].Text) {
		tcol = len(lines[target].Text)
	}
	e.buf.Caret = lines[target].Start + tcol
	e.el.SetCaret(e.buf.Caret)
}

func (e *Editor) moveLineEdge(home bool) {
	lines := e.el.LayoutLines()
	idx, _ := locateCaret(lines, e.buf.Caret)
	if home {
		e.buf.Caret = lines[idx].Start
	} else {
		e.buf.Caret = lines[idx].Start + len(lines[idx].Text)
	}
	e.el.SetCaret(e.buf.Caret)
}

// locateCaret finds the display line holding the caret and the caret's
// column within it.
func locateCaret(lines []page.Line, caret int) (idx, col int) {
	for i, line := range lines {
		end := line.Start + len(line.Text)
		if caret >= line.Start && caret <= end {
			isLast := i+1 >= len(lines)
			if caret < end || isLast || lines[i+1].Start > caret {
				return i, caret - line.Start
			}
		}
	}
	if len(lines) == 0 {
		return 0, 0
	}
	last := len(lines) - 1
	return last, len(lines[last].Text)
}

func (e *Editor) render() {
	frame := e.renderer.Frame(e)
	os.Stdout.WriteString(frame)
}

// loopScheduler defers debounce callbacks onto the editor goroutine: the
// timer only posts the callback, and the select loop in Run executes it.
// The node tree is therefore only ever touched from one goroutine.
type loopScheduler struct {
	work chan func()
}

func (s loopScheduler) AfterFunc(d time.Duration, fn func()) field.Timer {
	return time.AfterFunc(d, func() { s.work <- fn })
}

// redrawDecorator draws through the highlight renderer and then pings the
// editor loop so the new underlines reach the screen.
type redrawDecorator struct {
	hl   *highlight.Renderer
	ping chan struct{}
}

func (d *redrawDecorator) Refresh(el *page.Node, rich bool, spans []checker.Misspelling, acts field.Actions) {
	d.hl.Refresh(el, rich, spans, acts)
	select {
	case d.ping <- struct{}{}:
	default:
	}
}

func (d *redrawDecorator) Remove(el *page.Node) {
	d.hl.Remove(el)
	select {
	case d.ping <- struct{}{}:
	default:
	}
}

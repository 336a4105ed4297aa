package field

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/notify"
	"github.com/redlinehq/redline/internal/page"
	"github.com/redlinehq/redline/internal/settings"
	"github.com/redlinehq/redline/internal/stats"
	"github.com/redlinehq/redline/internal/suggest"
)

// DebounceDelay is how long after the last keystroke a field waits before
// rechecking.
const DebounceDelay = 500 * time.Millisecond

// autoCorrectWindow is how close (in runes) a misspelling's end must be to
// the caret for a word-boundary auto-correction to fire.
const autoCorrectWindow = 5

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler hands out timers. Tests substitute a manual implementation so
// debounce behavior is checked without sleeping.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Actions are the operations a decoration surface offers the user for one
// field. The coordinator hands a bound implementation to the decorator.
type Actions interface {
	// Apply replaces the span [start, end) with suggestion.
	Apply(start, end int, suggestion string)
	// Ignore hides a word for the rest of the session.
	Ignore(word string)
	// AddWord adds a word to the custom dictionary.
	AddWord(word string)
}

// Decorator renders check results over a field. The highlight package
// provides the production implementation.
type Decorator interface {
	Refresh(el *page.Node, rich bool, spans []checker.Misspelling, acts Actions)
	Remove(el *page.Node)
}

// State is the per-field record the coordinator keeps while attached.
type State struct {
	field       Field
	timer       Timer
	lastChecked string
	spans       []checker.Misspelling
}

// Spans returns the misspellings found by the field's last check.
func (s *State) Spans() []checker.Misspelling { return s.spans }

// Config wires a Coordinator. Document and Checker are required; the rest
// default to inert implementations.
type Config struct {
	Document  *page.Document
	Checker   *checker.Checker
	Dict      *dictionary.Dictionary
	DictStore *dictionary.Store
	Ranker    *suggest.Ranker
	Settings  *settings.Manager
	Decorator Decorator
	Stats     *stats.Recorder
	Notifier  notify.Notifier
	Scheduler Scheduler
	Debounce  time.Duration
}

// Coordinator owns the field registry for one document: it attaches to
// eligible fields, debounces rechecks as the user types, and routes
// corrections, ignores and dictionary additions back through the pipeline.
type Coordinator struct {
	mu       sync.Mutex
	doc      *page.Document
	chk      *checker.Checker
	dict     *dictionary.Dictionary
	store    *dictionary.Store
	ranker   *suggest.Ranker
	set      *settings.Manager
	dec      Decorator
	stats    *stats.Recorder
	notifier notify.Notifier
	sched    Scheduler
	debounce time.Duration

	fields  map[*page.Node]*State
	ignored map[string]struct{}

	// busy is set while the coordinator itself mutates the document
	// (decorations, corrections), so the mutation observer does not feed
	// those edits back into Scan.
	busy atomic.Bool
}

func (c *Coordinator) lock() {
	c.mu.Lock()
	c.busy.Store(true)
}

func (c *Coordinator) unlock() {
	c.busy.Store(false)
	c.mu.Unlock()
}

// NewCoordinator builds a coordinator from cfg.
func NewCoordinator(cfg Config) *Coordinator {
	c := &Coordinator{
		doc:      cfg.Document,
		chk:      cfg.Checker,
		dict:     cfg.Dict,
		store:    cfg.DictStore,
		ranker:   cfg.Ranker,
		set:      cfg.Settings,
		dec:      cfg.Decorator,
		stats:    cfg.Stats,
		notifier: cfg.Notifier,
		sched:    cfg.Scheduler,
		debounce: cfg.Debounce,
		fields:   make(map[*page.Node]*State),
		ignored:  make(map[string]struct{}),
	}
	if c.sched == nil {
		c.sched = realScheduler{}
	}
	if c.debounce <= 0 {
		c.debounce = DebounceDelay
	}
	if c.stats == nil {
		c.stats = stats.New()
	}
	if c.notifier == nil {
		c.notifier = notify.Logged()
	}
	return c
}

// Start scans the document once and rescans after every mutation, so fields
// that appear, disappear or change eligibility are picked up.
func (c *Coordinator) Start() {
	c.doc.Observe(c.Scan)
	c.Scan()
}

// Scan reconciles the registry against the document: attach what became
// eligible, detach what no longer is. Mutations the coordinator makes
// itself are skipped.
func (c *Coordinator) Scan() {
	if c.busy.Load() {
		return
	}
	c.lock()
	defer c.unlock()

	seen := make(map[*page.Node]bool)
	c.doc.Walk(func(n *page.Node) bool {
		if Eligible(n) {
			seen[n] = true
			if _, ok := c.fields[n]; !ok {
				c.attachLocked(n)
			}
		}
		return true
	})
	for el := range c.fields {
		if !seen[el] || !el.IsConnected() {
			c.detachLocked(el)
		}
	}
}

func (c *Coordinator) attachLocked(el *page.Node) {
	st := &State{field: New(el)}
	c.fields[el] = st
	el.AddEventListener("input", func(ev page.Event) { c.onInput(st, ev.Rune) })
	el.AddEventListener("focus", func(page.Event) { c.checkNow(st) })
	el.AddEventListener("scroll", func(page.Event) { c.refreshDecorations(st) })
	el.AddEventListener("blur", func(page.Event) { c.checkNow(st) })
	log.Debug(log.CatField, "attached", "tag", el.Tag())

	// A field that already holds text is checked right away; blank fields
	// wait for the first keystroke.
	if strings.TrimSpace(st.field.Text()) != "" {
		c.runCheckLocked(st, false)
	}
}

func (c *Coordinator) detachLocked(el *page.Node) {
	st, ok := c.fields[el]
	if !ok {
		return
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	el.RemoveEventListeners("input")
	el.RemoveEventListeners("focus")
	el.RemoveEventListeners("scroll")
	el.RemoveEventListeners("blur")
	if c.dec != nil {
		c.dec.Remove(el)
	}
	delete(c.fields, el)
	log.Debug(log.CatField, "detached", "tag", el.Tag())
}

// FieldCount returns how many fields are currently attached.
func (c *Coordinator) FieldCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fields)
}

// StateFor returns the attached state for el, nil when not attached.
func (c *Coordinator) StateFor(el *page.Node) *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[el]
}

func (c *Coordinator) onInput(st *State, r rune) {
	if r == ' ' || r == '\n' {
		c.tryAutoCorrect(st)
	}
	c.mu.Lock()
	c.scheduleCheck(st)
	c.mu.Unlock()
}

// scheduleCheck restarts the field's debounce timer. Callers hold c.mu.
func (c *Coordinator) scheduleCheck(st *State) {
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = c.sched.AfterFunc(c.debounce, func() { c.checkNow(st) })
}

// checkNow runs one check pass for the field. A pass whose text snapshot
// matches the previous one is dropped so bursts of timers settle to a
// single piece of work.
func (c *Coordinator) checkNow(st *State) {
	c.lock()
	defer c.unlock()
	c.runCheckLocked(st, false)
}

func (c *Coordinator) runCheckLocked(st *State, force bool) {
	el := st.field.Element()
	if _, attached := c.fields[el]; !attached {
		return
	}
	if !c.enabled() {
		st.spans = nil
		st.lastChecked = ""
		if c.dec != nil {
			c.dec.Remove(el)
		}
		return
	}
	text := st.field.Text()
	if !force && text == st.lastChecked {
		return
	}
	g := c.global()
	res := c.chk.Check(text, checker.Options{
		Grammar:   g.GrammarCheck,
		IsIgnored: c.isIgnoredLocked,
	})
	st.lastChecked = text
	st.spans = res.Spans
	c.stats.AddWordsChecked(res.WordsChecked)
	c.stats.AddMisspellingsFound(len(res.Spans))
	log.Debug(log.CatCheck, "field checked",
		"words", res.WordsChecked, "misspellings", len(res.Spans))
	c.refreshDecorationsLocked(st, g)
}

func (c *Coordinator) refreshDecorations(st *State) {
	c.lock()
	defer c.unlock()
	c.refreshDecorationsLocked(st, c.global())
}

func (c *Coordinator) refreshDecorationsLocked(st *State, g settings.Global) {
	if c.dec == nil {
		return
	}
	el := st.field.Element()
	if !g.ShowUnderlines || len(st.spans) == 0 {
		c.dec.Remove(el)
		return
	}
	c.dec.Refresh(el, st.field.Kind() == Rich, st.spans, &fieldActions{c: c, st: st})
}

// tryAutoCorrect fires on a word boundary: when enabled, a misspelling that
// just ended near the caret is replaced with its top suggestion.
func (c *Coordinator) tryAutoCorrect(st *State) {
	c.lock()
	defer c.unlock()
	if !c.enabled() || !c.global().AutoCorrect {
		return
	}
	caret := st.field.Element().Caret()
	text := st.field.Text()
	res := c.chk.Check(text, checker.Options{IsIgnored: c.isIgnoredLocked})
	for _, sp := range res.Spans {
		if len(sp.Suggestions) == 0 {
			continue
		}
		// The boundary rune sits between the word and the caret.
		if sp.EndIndex < caret-1-autoCorrectWindow || sp.EndIndex > caret-1 {
			continue
		}
		if err := st.field.ReplaceRange(sp.StartIndex, sp.EndIndex, sp.Suggestions[0]); err != nil {
			log.ErrorErr(log.CatField, "auto-correct replace failed", err)
			return
		}
		c.stats.AddCorrectionMade()
		st.lastChecked = ""
		log.Info(log.CatCheck, "auto-corrected",
			"from", sp.Word, "to", sp.Suggestions[0])
		return
	}
}

// RecheckAll forces a fresh pass over every attached field. Ignore-list and
// dictionary changes call it so stale underlines clear everywhere.
func (c *Coordinator) RecheckAll() {
	c.lock()
	defer c.unlock()
	for _, st := range c.fields {
		c.runCheckLocked(st, true)
	}
}

// IgnoreWord hides word for the rest of the session, across all fields.
func (c *Coordinator) IgnoreWord(word string) {
	c.lock()
	c.ignored[strings.ToLower(word)] = struct{}{}
	for _, st := range c.fields {
		c.runCheckLocked(st, true)
	}
	c.unlock()
	log.Info(log.CatCheck, "word ignored", "word", word)
}

// Ignored reports whether word is on the session ignore list.
func (c *Coordinator) Ignored(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isIgnoredLocked(word)
}

func (c *Coordinator) isIgnoredLocked(word string) bool {
	_, ok := c.ignored[strings.ToLower(word)]
	return ok
}

// AddToDictionary adds word to the custom dictionary, persists it when a
// store is configured, retrains the ranker and rechecks every field.
func (c *Coordinator) AddToDictionary(word string) {
	c.lock()
	added := c.dict.AddCustom(word)
	if added && c.ranker != nil {
		c.ranker.Retrain()
	}
	for _, st := range c.fields {
		c.runCheckLocked(st, true)
	}
	c.unlock()

	if !added {
		return
	}
	c.stats.AddWordAdded()
	if c.store != nil {
		if _, err := c.store.Add(word); err != nil {
			log.ErrorErr(log.CatDict, "persist custom word failed", err)
			c.notifier.Notify(notify.Fill(notify.Notification{
				Message:  "Could not save \"" + word + "\" to your dictionary",
				Severity: notify.Error,
			}))
			return
		}
	}
	c.notifier.Notify(notify.Fill(notify.Notification{
		Message:  "Added \"" + word + "\" to dictionary",
		Severity: notify.Success,
	}))
}

// ApplySuggestion replaces the span [start, end) in st's field and rechecks
// it immediately.
func (c *Coordinator) ApplySuggestion(st *State, start, end int, suggestion string) {
	c.lock()
	defer c.unlock()
	if err := st.field.ReplaceRange(start, end, suggestion); err != nil {
		log.ErrorErr(log.CatField, "apply suggestion failed", err)
		return
	}
	c.stats.AddCorrectionMade()
	st.lastChecked = ""
	c.runCheckLocked(st, true)
}

func (c *Coordinator) global() settings.Global {
	if c.set == nil {
		return settings.Defaults()
	}
	return c.set.Global()
}

func (c *Coordinator) enabled() bool {
	if c.set == nil {
		return true
	}
	return c.set.EnabledFor(c.doc.Hostname)
}

// fieldActions binds the decorator callbacks to one field.
type fieldActions struct {
	c  *Coordinator
	st *State
}

func (a *fieldActions) Apply(start, end int, suggestion string) {
	a.c.ApplySuggestion(a.st, start, end, suggestion)
}

func (a *fieldActions) Ignore(word string)  { a.c.IgnoreWord(word) }
func (a *fieldActions) AddWord(word string) { a.c.AddToDictionary(word) }

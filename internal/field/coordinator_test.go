package field

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/page"
	"github.com/redlinehq/redline/internal/settings"
	"github.com/redlinehq/redline/internal/suggest"
)

type manualTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) Timer {
	t := &manualTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every pending timer, as if the debounce window elapsed.
func (s *manualScheduler) fire() {
	pending := s.timers
	s.timers = nil
	for _, t := range pending {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

type recordingDecorator struct {
	refreshes int
	removes   int
	lastSpans []checker.Misspelling
	lastActs  Actions
}

func (d *recordingDecorator) Refresh(_ *page.Node, _ bool, spans []checker.Misspelling, acts Actions) {
	d.refreshes++
	d.lastSpans = spans
	d.lastActs = acts
}

func (d *recordingDecorator) Remove(*page.Node) { d.removes++ }

type fixture struct {
	doc   *page.Document
	el    *page.Node
	coord *Coordinator
	sched *manualScheduler
	dec   *recordingDecorator
	dict  *dictionary.Dictionary
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := page.NewDocument("example.com")
	el := page.NewElement("textarea")
	doc.Root().AppendChild(el)

	dict := dictionary.New()
	ranker := suggest.NewRanker(dict)
	sched := &manualScheduler{}
	dec := &recordingDecorator{}
	coord := NewCoordinator(Config{
		Document:  doc,
		Checker:   checker.New(dict, ranker),
		Dict:      dict,
		Ranker:    ranker,
		Decorator: dec,
		Scheduler: sched,
	})
	coord.Start()
	return &fixture{doc: doc, el: el, coord: coord, sched: sched, dec: dec, dict: dict}
}

func typeText(f *fixture, text string) {
	f.el.SetValue(text)
	f.el.SetCaret(len([]rune(text)))
	last := ' '
	if text != "" {
		runes := []rune(text)
		last = runes[len(runes)-1]
	}
	f.el.Dispatch("input", last)
}

func TestScanAttachesEligibleFields(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 1, f.coord.FieldCount())

	pw := page.NewElement("input")
	pw.SetAttr("type", "password")
	f.doc.Root().AppendChild(pw)
	require.Equal(t, 1, f.coord.FieldCount())

	extra := page.NewElement("input")
	f.doc.Root().AppendChild(extra)
	require.Equal(t, 2, f.coord.FieldCount())

	extra.Remove()
	require.Equal(t, 1, f.coord.FieldCount())
}

func TestDebouncedCheckFindsMisspellings(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh quick fox")

	st := f.coord.StateFor(f.el)
	require.NotNil(t, st)
	require.Empty(t, st.Spans())

	f.sched.fire()
	spans := f.coord.StateFor(f.el).Spans()
	require.Len(t, spans, 1)
	require.Equal(t, "teh", spans[0].Word)
	require.Contains(t, spans[0].Suggestions, "the")
	require.Positive(t, f.dec.refreshes)
}

func TestDebounceCoalescesBursts(t *testing.T) {
	f := newFixture(t)
	typeText(f, "t")
	typeText(f, "te")
	typeText(f, "teh")

	live := 0
	for _, tm := range f.sched.timers {
		if !tm.stopped {
			live++
		}
	}
	require.Equal(t, 1, live)
}

func TestUnchangedSnapshotSkipsRecheck(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh fox")
	f.sched.fire()
	refreshes := f.dec.refreshes

	// A timer fires but the text did not change since the last pass.
	f.el.Dispatch("input", 'x')
	f.sched.fire()
	require.Equal(t, refreshes, f.dec.refreshes)
}

func TestIgnoreWordClearsSpans(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh fox")
	f.sched.fire()
	require.Len(t, f.coord.StateFor(f.el).Spans(), 1)

	f.coord.IgnoreWord("Teh")
	require.True(t, f.coord.Ignored("teh"))
	require.Empty(t, f.coord.StateFor(f.el).Spans())
}

func TestAddToDictionaryRechecksEverywhere(t *testing.T) {
	f := newFixture(t)
	second := page.NewElement("textarea")
	f.doc.Root().AppendChild(second)

	typeText(f, "zorgon is here")
	second.SetValue("zorgon was here")
	second.Dispatch("input", 's')
	f.sched.fire()
	require.Len(t, f.coord.StateFor(f.el).Spans(), 1)
	require.Len(t, f.coord.StateFor(second).Spans(), 1)

	f.coord.AddToDictionary("zorgon")
	require.Empty(t, f.coord.StateFor(f.el).Spans())
	require.Empty(t, f.coord.StateFor(second).Spans())
}

func TestApplySuggestionThroughActions(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh fox")
	f.sched.fire()
	require.NotNil(t, f.dec.lastActs)
	sp := f.dec.lastSpans[0]

	f.dec.lastActs.Apply(sp.StartIndex, sp.EndIndex, "the")
	require.Equal(t, "the fox", f.el.Value())
	require.Empty(t, f.coord.StateFor(f.el).Spans())
}

// newSettings builds a file-backed settings manager for tests that need
// non-default flags.
func newSettings(t *testing.T, mutate func(*settings.Global)) *settings.Manager {
	t.Helper()
	mgr := settings.NewManager(settings.NewStore(filepath.Join(t.TempDir(), "config.yaml")))
	if mutate != nil {
		require.NoError(t, mgr.Update(mutate))
	}
	return mgr
}

func TestAttachChecksExistingContent(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := page.NewElement("textarea")
	el.SetValue("teh quick fox")
	doc.Root().AppendChild(el)

	dict := dictionary.New()
	ranker := suggest.NewRanker(dict)
	sched := &manualScheduler{}
	coord := NewCoordinator(Config{
		Document:  doc,
		Checker:   checker.New(dict, ranker),
		Dict:      dict,
		Ranker:    ranker,
		Decorator: &recordingDecorator{},
		Scheduler: sched,
	})
	coord.Start()

	// No timer fired; the pre-filled field was checked on attach.
	spans := coord.StateFor(el).Spans()
	require.Len(t, spans, 1)
	require.Equal(t, "teh", spans[0].Word)

	// A blank field arms nothing until the user types.
	blank := page.NewElement("textarea")
	doc.Root().AppendChild(blank)
	require.Empty(t, sched.timers)
	require.Empty(t, coord.StateFor(blank).Spans())
}

func TestFocusRechecksField(t *testing.T) {
	f := newFixture(t)

	// Content changed behind the coordinator's back, no input event.
	f.el.SetValue("teh fox")
	f.el.Dispatch("focus", 0)

	spans := f.coord.StateFor(f.el).Spans()
	require.Len(t, spans, 1)
	require.Equal(t, "teh", spans[0].Word)
}

func TestAutoCorrectOnWordBoundary(t *testing.T) {
	f := newFixture(t)
	f.coord.set = newSettings(t, func(g *settings.Global) { g.AutoCorrect = true })

	typeText(f, "teh ")

	val := f.el.Value()
	require.NotContains(t, val, "teh")
	require.True(t, f.dict.IsCorrect(strings.Fields(val)[0]))
	require.Equal(t, int64(1), f.coord.stats.Snapshot().CorrectionsMade)
}

func TestAutoCorrectLeavesDistantWordsAlone(t *testing.T) {
	f := newFixture(t)
	f.coord.set = newSettings(t, func(g *settings.Global) { g.AutoCorrect = true })

	// The misspelling ended well before this boundary.
	typeText(f, "teh quick fox here ")

	require.Contains(t, f.el.Value(), "teh")
	require.Zero(t, f.coord.stats.Snapshot().CorrectionsMade)
}

func TestAutoCorrectStaysOffByDefault(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh ")
	require.Equal(t, "teh ", f.el.Value())
	require.Zero(t, f.coord.stats.Snapshot().CorrectionsMade)
}

func TestDetachStopsPendingTimer(t *testing.T) {
	f := newFixture(t)
	typeText(f, "teh")
	f.el.Remove()
	require.Equal(t, 0, f.coord.FieldCount())

	// The stale timer fires but the field is gone.
	f.sched.fire()
	require.Zero(t, f.dec.refreshes)
}

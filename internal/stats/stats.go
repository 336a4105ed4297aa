// Package stats keeps fire-and-forget usage counters. Recording never
// blocks and never fails; callers do not check results.
package stats

import "sync/atomic"

// Recorder accumulates counters for one session.
type Recorder struct {
	wordsChecked      atomic.Int64
	misspellingsFound atomic.Int64
	correctionsMade   atomic.Int64
	wordsAdded        atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	WordsChecked      int64 `json:"wordsChecked"`
	MisspellingsFound int64 `json:"misspellingsFound"`
	CorrectionsMade   int64 `json:"correctionsMade"`
	WordsAdded        int64 `json:"wordsAdded"`
}

// New returns a zeroed recorder.
func New() *Recorder { return &Recorder{} }

// AddWordsChecked bumps the words-checked counter by n.
func (r *Recorder) AddWordsChecked(n int) { r.wordsChecked.Add(int64(n)) }

// AddMisspellingsFound bumps the misspellings-found counter by n.
func (r *Recorder) AddMisspellingsFound(n int) { r.misspellingsFound.Add(int64(n)) }

// AddCorrectionMade bumps the corrections-made counter.
func (r *Recorder) AddCorrectionMade() { r.correctionsMade.Add(1) }

// AddWordAdded bumps the words-added-to-dictionary counter.
func (r *Recorder) AddWordAdded() { r.wordsAdded.Add(1) }

// Snapshot copies the current counter values.
func (r *Recorder) Snapshot() Snapshot {
	return Snapshot{
		WordsChecked:      r.wordsChecked.Load(),
		MisspellingsFound: r.misspellingsFound.Load(),
		CorrectionsMade:   r.correctionsMade.Load(),
		WordsAdded:        r.wordsAdded.Load(),
	}
}

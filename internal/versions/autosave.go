package versions

import (
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/logging"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultAutosaveDelay is the idle period after the last edit before the
// pending document is written
const DefaultAutosaveDelay = 300 * time.Millisecond

// Saver is the part of Store the autosaver writes through
type Saver interface {
	SaveActiveDocument(doc types.Document) types.VersionStore
}

// Autosaver coalesces rapid edits into at most one save per idle period.
// Each Schedule supersedes the pending document and restarts the timer.
type Autosaver struct {
	saver Saver
	delay time.Duration
	log   logrus.FieldLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending *types.Document
	stopped bool

	// saveMu keeps saves in the order their documents were taken
	saveMu sync.Mutex
}

// NewAutosaver returns an autosaver writing through saver. A non-positive
// delay uses DefaultAutosaveDelay.
func NewAutosaver(saver Saver, delay time.Duration, logger logrus.FieldLogger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{
		saver: saver,
		delay: delay,
		log:   logging.OrDiscard(logger),
	}
}

// Schedule queues doc for saving once no newer document arrives within the delay
func (a *Autosaver) Schedule(doc types.Document) {
	doc = doc.Clone()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	if a.pending != nil {
		a.log.Debug("autosave superseded by a newer edit")
	}
	a.pending = &doc
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() { a.Flush() })
}

// Pending reports whether a document is waiting to be saved
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush saves the pending document now. It reports whether anything was saved.
func (a *Autosaver) Flush() bool {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	doc := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if doc == nil {
		return false
	}
	store := a.saver.SaveActiveDocument(*doc)
	a.log.WithField("version_id", store.ActiveVersionID).Debug("autosaved active document")
	return true
}

// Stop cancels any pending save and refuses further schedules
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

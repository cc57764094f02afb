package index

// ChangeType identifies the kind of index mutation.
type ChangeType string

const (
	ChangeUpserted ChangeType = "upserted"
	ChangeUpdated  ChangeType = "updated"
	ChangeRemoved  ChangeType = "removed"
	ChangeReset    ChangeType = "reset"
)

// ChangeEvent describes one committed mutation.
type ChangeEvent struct {
	Type ChangeType

	// URL is the affected document. It is empty for ChangeReset.
	URL string

	// Version increases with every mutation of the index.
	Version uint64
}

// ChangeListener receives change events. Listeners run synchronously on the
// mutating goroutine after the index lock is released.
type ChangeListener func(ChangeEvent)

// OnChange registers listener and returns a function that unregisters it.
// A nil listener is ignored.
func (ix *Index) OnChange(listener ChangeListener) func() {
	if listener == nil {
		return func() {}
	}

	ix.listenersMu.Lock()
	id := ix.nextListenerID
	ix.nextListenerID++
	ix.listeners[id] = listener
	ix.listenersMu.Unlock()

	return func() { ix.removeListener(id) }
}

func (ix *Index) removeListener(id uint64) {
	ix.listenersMu.Lock()
	defer ix.listenersMu.Unlock()
	delete(ix.listeners, id)
}

func (ix *Index) notify(events ...ChangeEvent) {
	if len(events) == 0 {
		return
	}

	ix.listenersMu.RLock()
	listeners := make([]ChangeListener, 0, len(ix.listeners))
	for _, l := range ix.listeners {
		listeners = append(listeners, l)
	}
	ix.listenersMu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

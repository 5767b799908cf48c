package manager

import (
	"context"
	"time"
)

// beginLoad reserves a queue slot and then the single in-flight load slot.
// Returns a release func to be deferred.
func (m *Manager) beginLoad(ctx context.Context, name string) (func(), error) {
	// Try to reserve a queue slot; an immediately full queue is backpressure.
	select {
	case m.queueCh <- struct{}{}:
		// reserved queue slot
	default:
		return func() {}, tooBusyError{name: name}
	}

	// Wait to acquire the single in-flight load slot
	acquired := false
	defer func() {
		if !acquired {
			<-m.queueCh
		}
	}()
	select {
	case m.loadCh <- struct{}{}:
		acquired = true
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-time.After(m.maxWait):
		return func() {}, tooBusyError{name: name}
	}

	return func() {
		<-m.loadCh
		<-m.queueCh
	}, nil
}

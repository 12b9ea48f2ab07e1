package selection

import "sync"

// Store holds each user's selection for the lifetime of the process. A
// gateway restart starts every user with an empty selection.
type Store struct {
	mu     sync.RWMutex
	byUser map[string]State
}

// NewStore builds an empty selection store.
func NewStore() *Store {
	return &Store{byUser: map[string]State{}}
}

// Get returns a copy of the user's selection, empty if none exists.
func (st *Store) Get(userID string) State {
	st.mu.RLock()
	state, ok := st.byUser[userID]
	st.mu.RUnlock()
	if !ok {
		return NewState()
	}
	return state.clone()
}

// Put replaces the user's selection.
func (st *Store) Put(userID string, s State) {
	st.mu.Lock()
	st.byUser[userID] = s.clone()
	st.mu.Unlock()
}

// Clear drops the user's selection entirely.
func (st *Store) Clear(userID string) {
	st.mu.Lock()
	delete(st.byUser, userID)
	st.mu.Unlock()
}

package multiplayer

import "sync"

// SessionHandle is how the coordinator and matches reach a player without
// knowing about SSH or Bubble Tea.
type SessionHandle interface {
	ID() SessionID

	// Send queues evt for the player. It never blocks.
	Send(evt SessionEvent)

	// Done closes when the player's connection ends.
	Done() <-chan struct{}
}

const defaultSessionBacklog = 64

// ChannelSession is the SessionHandle used by the terminal front end.
//
// Events wait in an ordered backlog and are handed out one at a time on
// Events. A snapshot replaces an unread snapshot of the same match, so a
// slow reader sees the newest board and never loses a lobby or match
// event to the snapshot stream. When control events alone exceed the
// backlog limit, the incoming event is dropped.
type ChannelSession struct {
	id    SessionID
	limit int

	mu       sync.Mutex
	backlog  []SessionEvent
	inFlight bool

	wake     chan struct{}
	out      chan SessionEvent
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession starts a session whose backlog holds up to limit
// unread events. A limit below 1 means the default of 64.
func NewChannelSession(id SessionID, limit int) *ChannelSession {
	if limit < 1 {
		limit = defaultSessionBacklog
	}
	s := &ChannelSession{
		id:    id,
		limit: limit,
		wake:  make(chan struct{}, 1),
		out:   make(chan SessionEvent),
		done:  make(chan struct{}),
	}
	go s.deliver()
	return s
}

func (s *ChannelSession) ID() SessionID {
	return s.id
}

func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	queued := s.enqueue(evt)
	s.mu.Unlock()

	if queued {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// enqueue adds evt to the backlog. Caller holds s.mu.
func (s *ChannelSession) enqueue(evt SessionEvent) bool {
	for i, old := range s.backlog {
		if supersedes(evt, old) {
			s.backlog[i] = evt
			return true
		}
	}

	pending := len(s.backlog)
	if s.inFlight {
		pending++
	}
	if pending >= s.limit {
		return false
	}
	s.backlog = append(s.backlog, evt)
	return true
}

// next pops the oldest unread event. Caller holds s.mu.
func (s *ChannelSession) next() (SessionEvent, bool) {
	if len(s.backlog) == 0 {
		return nil, false
	}
	evt := s.backlog[0]
	s.backlog[0] = nil
	s.backlog = s.backlog[1:]
	return evt, true
}

func (s *ChannelSession) deliver() {
	for {
		s.mu.Lock()
		evt, ok := s.next()
		s.inFlight = ok
		s.mu.Unlock()

		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		select {
		case s.out <- evt:
		case <-s.done:
			return
		}
	}
}

// Events yields queued events in order. It stops yielding after Close.
func (s *ChannelSession) Events() <-chan SessionEvent {
	return s.out
}

func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. Further sends are ignored.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry maps session IDs to live handles.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

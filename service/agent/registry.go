package agent

import "sync"

// Registry mantém as sessões de conversa abertas no processo, uma por
// session_id. O histórico persistido em base de dados sobrevive ao
// processo; o registo só guarda o estado vivo.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	exchanger Exchanger
}

func NewRegistry(exchanger Exchanger) *Registry {
	return &Registry{
		sessions:  make(map[string]*Session),
		exchanger: exchanger,
	}
}

// Get devolve a sessão, criando-a se necessário. created indica ao
// chamador que deve hidratá-la a partir do histórico persistido.
func (r *Registry) Get(sessionID string) (session *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sessionID]; ok {
		return s, false
	}

	s := NewSession(sessionID, r.exchanger)
	r.sessions[sessionID] = s
	return s, true
}

func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

package session

// Storage keys for approved session material. The user profile is stored
// as serialized JSON under KeyUser.
const (
	KeyToken = "admin_token"
	KeyUser  = "admin_user"
)

// Backend is the persisted-session contract: synchronous key-value
// storage with last-write-wins semantics. Read at boot, written on
// login success, deleted on logout.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryBackend is an in-process Backend used in tests and as a fallback
// when no session file path is configured.
type MemoryBackend struct {
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryBackend) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryBackend) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryBackend) Delete(key string) error {
	delete(m.values, key)
	return nil
}

package clipboard

import "sync"

// Memory is an in-process clipboard that records every write.
type Memory struct {
	mu     sync.Mutex
	writes []string
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText records text as the clipboard's new contents.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, text)
	return nil
}

// Last returns the most recent write, if any.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}

// Writes returns how many writes the clipboard has received.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

// Failing is a clipboard that rejects every write with Err, for exercising
// the failure path.
type Failing struct {
	Err error
}

// WriteText always fails.
func (f Failing) WriteText(string) error {
	if f.Err != nil {
		return f.Err
	}
	return ErrUnavailable
}

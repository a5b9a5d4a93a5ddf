package cache

// Manager chains the memory and disk layers: lookups promote disk hits into
// memory, writes go to both. The disk layer is optional; with a nil disk
// the manager degrades to pure in-memory caching.
type Manager struct {
	memory *Memory
	disk   *Disk
}

// NewManager builds a manager over the given layers. disk may be nil.
func NewManager(memory *Memory, disk *Disk) *Manager {
	return &Manager{memory: memory, disk: disk}
}

// Get looks up key in memory first, then disk.
func (m *Manager) Get(key string) ([]byte, bool) {
	if value, ok := m.memory.Get(key); ok {
		return value, true
	}
	if m.disk == nil {
		return nil, false
	}
	value, ok := m.disk.Get(key)
	if !ok {
		return nil, false
	}
	_ = m.memory.Put(key, value)
	return value, true
}

// Put writes key to both layers. Disk failures are non-fatal; the memory
// entry still serves this session.
func (m *Manager) Put(key string, value []byte) error {
	if err := m.memory.Put(key, value); err != nil {
		return err
	}
	if m.disk != nil {
		_ = m.disk.Put(key, value)
	}
	return nil
}

// Clear drops both layers.
func (m *Manager) Clear() {
	m.memory.Clear()
	if m.disk != nil {
		_ = m.disk.Clear()
	}
}

// MemoryStats returns the in-memory layer's counters.
func (m *Manager) MemoryStats() Stats {
	return m.memory.Stats()
}

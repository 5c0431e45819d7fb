package phpserial

import "math"

// Entry represents array key/value pair
type Entry struct {
	Key   Key
	Value Value
}

// Map represents an insertion ordered array
type Map struct {
	entries   []Entry
	index     map[Key]int
	nextIndex int64
	full      bool
}

// NewMap creates an empty array
func NewMap() *Map {
	return &Map{index: map[Key]int{}}
}

// Len returns number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Put sets value for the key, replacing an existing key keeps its position
func (m *Map) Put(key Key, value Value) {
	if m.index == nil {
		m.index = map[Key]int{}
	}
	if key.isInt && key.i >= m.nextIndex {
		if key.i == math.MaxInt64 {
			m.full = true
		} else {
			m.nextIndex = key.i + 1
		}
	}
	if pos, ok := m.index[key]; ok {
		m.entries[pos].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Append stores value under the next integer key, it returns false once math.MaxInt64 has been used as a key
func (m *Map) Append(value Value) (Key, bool) {
	if m.full {
		return Key{}, false
	}
	key := IntKey(m.nextIndex)
	m.Put(key, value)
	return key, true
}

// Get returns value for the key
func (m *Map) Get(key Key) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	pos, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[pos].Value, true
}

// Lookup returns value for the string key
func (m *Map) Lookup(key string) (Value, bool) {
	return m.Get(StringKey(key))
}

// Delete removes key
func (m *Map) Delete(key Key) bool {
	if m == nil {
		return false
	}
	pos, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	m.entries = append(m.entries[:pos], m.entries[pos+1:]...)
	for i := pos; i < len(m.entries); i++ {
		m.index[m.entries[i].Key] = i
	}
	return true
}

// Keys returns keys in insertion order
func (m *Map) Keys() []Key {
	if m == nil {
		return nil
	}
	result := make([]Key, len(m.entries))
	for i := range m.entries {
		result[i] = m.entries[i].Key
	}
	return result
}

// Entries returns entries in insertion order, the slice must not be modified
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Equal returns true if both arrays have the same entries in the same order
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i := range m.Entries() {
		candidate := &other.entries[i]
		if m.entries[i].Key != candidate.Key {
			return false
		}
		if !m.entries[i].Value.Equal(candidate.Value) {
			return false
		}
	}
	return true
}

// IsList returns true if keys are the sequence 0..n-1
func (m *Map) IsList() bool {
	for i, entry := range m.Entries() {
		if !entry.Key.isInt || entry.Key.i != int64(i) {
			return false
		}
	}
	return true
}

// Interface returns []interface{} for lists, map[string]interface{} when all keys are strings,
// and map[interface{}]interface{} otherwise. An empty array is returned as an empty list.
func (m *Map) Interface() interface{} {
	if m.IsList() {
		result := make([]interface{}, m.Len())
		for i, entry := range m.Entries() {
			result[i] = entry.Value.Interface()
		}
		return result
	}
	allStrings := true
	for _, entry := range m.entries {
		if entry.Key.isInt {
			allStrings = false
			break
		}
	}
	if allStrings {
		result := make(map[string]interface{}, len(m.entries))
		for _, entry := range m.entries {
			result[entry.Key.s] = entry.Value.Interface()
		}
		return result
	}
	result := make(map[interface{}]interface{}, len(m.entries))
	for _, entry := range m.entries {
		result[entry.Key.Interface()] = entry.Value.Interface()
	}
	return result
}

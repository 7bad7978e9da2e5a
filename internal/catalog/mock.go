package catalog

// Compile-time check that MockProvider implements TablesProvider.
var _ TablesProvider = (*MockProvider)(nil)

// MockProvider is a configurable TablesProvider for testing. TablesFunc is
// called on every Tables call; when nil, the fixed Data is returned.
type MockProvider struct {
	TablesFunc func() (*Tables, error)
	Data       *Tables

	// Calls counts Tables invocations.
	Calls int
}

func (m *MockProvider) Tables() (*Tables, error) {
	m.Calls++
	if m.TablesFunc != nil {
		return m.TablesFunc()
	}
	if m.Data == nil {
		return nil, ErrNotReady
	}
	return m.Data, nil
}

// ReadyAfter returns a MockProvider that reports ErrNotReady for the first
// n calls and data afterwards.
func ReadyAfter(n int, data *Tables) *MockProvider {
	m := &MockProvider{}
	m.TablesFunc = func() (*Tables, error) {
		if m.Calls <= n {
			return nil, ErrNotReady
		}
		return data, nil
	}
	return m
}

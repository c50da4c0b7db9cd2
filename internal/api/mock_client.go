package api

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	AskAnswer string
	AskChunks []string
	AskErr    error
	BaseURLVal string

	// Call recorders
	AskCalled  bool
	AskCount   int
	LastQuery  string
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Ask(query string, onChunk func(chunk string)) (string, error) {
	m.AskCalled = true
	m.AskCount++
	m.LastQuery = query

	if m.AskErr != nil {
		return "", m.AskErr
	}

	if len(m.AskChunks) > 0 {
		var answer string
		for _, chunk := range m.AskChunks {
			answer += chunk
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		return answer, nil
	}

	return m.AskAnswer, nil
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal != "" {
		return m.BaseURLVal
	}
	return "http://mock"
}

package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockGenerator implements ids.Generator for testing across packages
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Next() string {
	args := m.Called()
	return args.String(0)
}

// Package mocks provides testify mocks for the widget package's interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// MockSearcher is a mock implementation of widget.Searcher.
type MockSearcher struct {
	mock.Mock
}

// NewMockSearcher creates a mock searcher whose expectations are asserted
// when the test ends.
func NewMockSearcher(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockSearcher {
	m := &MockSearcher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Search mocks the Search method.
func (m *MockSearcher) Search(
	ctx context.Context,
	req domain.SearchRequest,
) (*domain.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResponse), args.Error(1) //nolint:errcheck,forcetypeassert // mock type assertion is safe
}

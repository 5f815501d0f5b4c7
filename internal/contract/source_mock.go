package contract

import (
	"context"

	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of Source for testing.
type MockSource struct {
	mock.Mock
}

var _ Source = &MockSource{} // Compile-time check

// Live implements the Source interface.
func (m *MockSource) Live(ctx context.Context) ([]schema.LiveTraffic, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.LiveTraffic)
	return rows, args.Error(1)
}

// Events implements the Source interface.
func (m *MockSource) Events(ctx context.Context) ([]schema.EventItem, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.EventItem)
	return rows, args.Error(1)
}

// Trend implements the Source interface.
func (m *MockSource) Trend(ctx context.Context, category string, hours int, explicit *schema.DateRange) ([]schema.Sample, error) {
	args := m.Called(ctx, category, hours, explicit)
	rows, _ := args.Get(0).([]schema.Sample)
	return rows, args.Error(1)
}

// Volatility implements the Source interface.
func (m *MockSource) Volatility(ctx context.Context) ([]schema.VolatilityEntry, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.VolatilityEntry)
	return rows, args.Error(1)
}

// DailyTop implements the Source interface.
func (m *MockSource) DailyTop(ctx context.Context) ([]schema.DailyTop, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.DailyTop)
	return rows, args.Error(1)
}

// King implements the Source interface.
func (m *MockSource) King(ctx context.Context) ([]schema.KingStreamer, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.KingStreamer)
	return rows, args.Error(1)
}

// Flash implements the Source interface.
func (m *MockSource) Flash(ctx context.Context) ([]schema.FlashCategory, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.FlashCategory)
	return rows, args.Error(1)
}

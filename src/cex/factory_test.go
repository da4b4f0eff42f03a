package cex

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient 测试用的行情客户端
type fakeClient struct{}

func (f *fakeClient) GetName() string { return "fake" }
func (f *fakeClient) GetKlines(ctx context.Context, pair TradingPair, interval string, limit int) ([]*KlineData, error) {
	return nil, nil
}
func (f *fakeClient) GetKlinesWithTimeRange(ctx context.Context, pair TradingPair, interval string, startTime, endTime time.Time, limit int) ([]*KlineData, error) {
	return nil, nil
}
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

type fakeFactory struct{}

func (f *fakeFactory) CreateClient() Client { return &fakeClient{} }

func TestFactory_RegisterAndCreate(t *testing.T) {
	RegisterFactory("fake", &fakeFactory{})

	client, err := CreateClient("fake")
	require.NoError(t, err)
	assert.Equal(t, "fake", client.GetName())

	assert.Contains(t, GetSupportedExchanges(), "fake")
}

func TestFactory_UnknownExchange(t *testing.T) {
	client, err := CreateClient("no-such-exchange")
	assert.Error(t, err)
	assert.Nil(t, client)
}

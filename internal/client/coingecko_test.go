package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGeckoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "usd-coin", r.URL.Query().Get("ids"))
		assert.Equal(t, "rub", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"usd-coin":{"rub":92.3456}}`))
	}))
	defer srv.Close()

	rate, err := NewCoinGeckoClient(srv.URL).Rate(context.Background(), "RUB")
	require.NoError(t, err)
	assert.Equal(t, "92.35", rate)
}

func TestCoinGeckoRateMissingCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"usd-coin":{}}`))
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL).Rate(context.Background(), "xyz")
	assert.Error(t, err)
}

func TestCoinGeckoRateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL).Rate(context.Background(), "rub")
	assert.EqualError(t, err, "failed to get rate: status 429")
}


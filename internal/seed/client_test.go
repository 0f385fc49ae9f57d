package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/shifts/last", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"fuel_prices": {"hsd": "89.50", "ms": "103.10"},
			"readings": [
				{"nozzle": 1, "closing": "5100.55"},
				{"nozzle": 2, "closing": "1100"}
			]
		}`))
	})
	mux.HandleFunc("/lubricants", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "Engine Oil 1L", "price": "320"}]`))
	})
	mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["TATA Sales", "BMW"]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, 0, nil)
	data := client.Fetch(context.Background())

	require.NotNil(t, data.FuelPrices)
	assert.True(t, data.FuelPrices.HSD.Equal(dec("89.50")))
	assert.True(t, data.PriorClosings[1].Equal(dec("5100.55")))
	assert.True(t, data.PriorClosings[2].Equal(dec("1100")))

	require.Len(t, data.Lubricants, 1)
	assert.Equal(t, "Engine Oil 1L", data.Lubricants[0].Name)
	assert.True(t, data.Lubricants[0].Quantity.IsZero())

	assert.Equal(t, []string{"TATA Sales", "BMW"}, data.Customers)
}

func TestFetchIsFailOpen(t *testing.T) {
	t.Run("server errors leave the payload empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		data := NewClient(srv.URL, 0, nil).Fetch(context.Background())

		require.NotNil(t, data)
		assert.Nil(t, data.FuelPrices)
		assert.Empty(t, data.PriorClosings)
		assert.Empty(t, data.Lubricants)
		assert.Empty(t, data.Customers)
	})

	t.Run("unreachable backend still returns usable data", func(t *testing.T) {
		data := NewClient("http://127.0.0.1:1", 0, nil).Fetch(context.Background())
		require.NotNil(t, data)
		assert.Nil(t, data.FuelPrices)
	})

	t.Run("partial failure keeps the feeds that worked", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["TATA Sales"]`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		data := NewClient(srv.URL, 0, nil).Fetch(context.Background())

		assert.Nil(t, data.FuelPrices)
		assert.Equal(t, []string{"TATA Sales"}, data.Customers)
	})
}

func TestFetchIgnoresNonPositivePrices(t *testing.T) {
	// A backend with no prior shift may return zeroed prices; those must
	// not override the session defaults.
	mux := http.NewServeMux()
	mux.HandleFunc("/shifts/last", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fuel_prices": {"hsd": "0", "ms": "0"}, "readings": []}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	data := NewClient(srv.URL, 0, nil).Fetch(context.Background())
	assert.Nil(t, data.FuelPrices)
	assert.Empty(t, data.PriorClosings)
}

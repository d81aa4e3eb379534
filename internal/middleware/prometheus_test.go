// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/ludothek/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Run("records status codes", func(t *testing.T) {
		statusCodes := []int{
			http.StatusOK,
			http.StatusBadRequest,
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusInternalServerError,
		}

		for _, code := range statusCodes {
			t.Run(http.StatusText(code), func(t *testing.T) {
				handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(code)
				}))

				req := httptest.NewRequest(http.MethodPost, "/metrics-test/status", nil)
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				if rec.Code != code {
					t.Errorf("Expected status %d, got %d", code, rec.Code)
				}
				got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/metrics-test/status", strconv.Itoa(code)))
				if got < 1 {
					t.Errorf("counter for %d = %v, want >= 1", code, got)
				}
			})
		}
	})

	t.Run("defaults to 200 when WriteHeader not called", func(t *testing.T) {
		handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Hello"))
		}))

		req := httptest.NewRequest(http.MethodGet, "/metrics-test/default", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected default status 200, got %d", rec.Code)
		}
		if got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/default", "200")); got != 1 {
			t.Errorf("counter = %v, want 1", got)
		}
	})

	t.Run("labels with the chi route pattern", func(t *testing.T) {
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/metrics-test/games/{id}/similar", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		for _, path := range []string{"/metrics-test/games/13/similar", "/metrics-test/games/822/similar"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		}

		got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/games/{id}/similar", "200"))
		if got != 2 {
			t.Errorf("counter = %v, want 2 under one pattern label", got)
		}
	})

	t.Run("active request gauge returns to its start value", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.APIActiveRequests)
		var during float64
		handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			during = testutil.ToFloat64(metrics.APIActiveRequests)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/gauge", nil))

		if during != before+1 {
			t.Errorf("gauge during request = %v, want %v", during, before+1)
		}
		if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
			t.Errorf("gauge after request = %v, want %v", after, before)
		}
	})
}

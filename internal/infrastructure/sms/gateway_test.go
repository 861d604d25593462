package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
)

func TestFoldDiacritics(t *testing.T) {
	tests := map[string]string{
		"Čišćenje žice":    "Ciscenje zice",
		"Đorđe Đokić":      "Djordje Djokic",
		"plain ascii 123":  "plain ascii 123",
		"Servis završen ✓": "Servis zavrsen ✓",
	}
	for in, want := range tests {
		assert.Equal(t, want, FoldDiacritics(in), in)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "064 123-4567", want: "+381641234567"},
		{in: "+381641234567", want: "+381641234567"},
		{in: "00381641234567", want: "+381641234567"},
		{in: "381641234567", want: "+381641234567"},
		{in: "064abc", wantErr: true},
		{in: "123", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestGatewaySender_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(sendResponse{MessageID: "sms-77"})
	}))
	defer srv.Close()

	s := NewGatewaySender(sharedConfig.SMSConfig{GatewayURL: srv.URL, APIKey: "key-1", SenderID: "Frigo"})
	id, err := s.Send(context.Background(), "064 111 2233", "", "Vaš uređaj je spreman")
	require.NoError(t, err)

	assert.Equal(t, "sms-77", id)
	assert.Equal(t, "+381641112233", got.To)
	assert.Equal(t, "Frigo", got.From)
	assert.Equal(t, "Vas uredjaj je spreman", got.Text)
}

func TestGatewaySender_Failures(t *testing.T) {
	t.Run("gateway rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(sendResponse{Error: "unknown number"})
		}))
		defer srv.Close()

		s := NewGatewaySender(sharedConfig.SMSConfig{GatewayURL: srv.URL})
		_, err := s.Send(context.Background(), "0641112233", "", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "unknown number")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		s := NewGatewaySender(sharedConfig.SMSConfig{GatewayURL: srv.URL})
		s.httpClient.Timeout = 20 * time.Millisecond
		_, err := s.Send(context.Background(), "0641112233", "", "x")
		assert.Error(t, err)
	})

	t.Run("bad number never reaches gateway", func(t *testing.T) {
		s := NewGatewaySender(sharedConfig.SMSConfig{GatewayURL: "http://127.0.0.1:1"})
		_, err := s.Send(context.Background(), "n/a", "", "x")
		assert.ErrorContains(t, err, "invalid phone number")
	})
}

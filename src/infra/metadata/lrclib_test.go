package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLRCLibLookup_ReturnsSyncedAndPlainLyrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("track_name") != "Imagine" || r.URL.Query().Get("artist_name") != "John Lennon" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Imagine","artistName":"John Lennon",
			"syncedLyrics":"[00:00.00] x\n[00:05.00] y","plainLyrics":"x\ny"}`)
	}))
	defer server.Close()

	provider := NewLRCLibProvider(true, server.URL)
	res, err := provider.Lookup(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Found {
		t.Fatal("expected a match")
	}
	if res.SyncedLyrics == "" || res.PlainLyrics != "x\ny" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestLRCLibLookup_UnknownTrackIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewLRCLibProvider(true, server.URL)
	res, err := provider.Lookup(context.Background(), "No Such Song", "Nobody")
	if err != nil {
		t.Fatalf("a 404 is a miss, not an error, got %v", err)
	}
	if res.Found {
		t.Error("expected Found=false")
	}
}

func TestLRCLibLookup_EmptyLyricsIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Instrumental","syncedLyrics":"","plainLyrics":""}`)
	}))
	defer server.Close()

	provider := NewLRCLibProvider(true, server.URL)
	res, err := provider.Lookup(context.Background(), "Instrumental", "Someone")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Found {
		t.Error("a record with no lyrics content is a miss")
	}
}

func TestLRCLibLookup_ServerErrorIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewLRCLibProvider(true, server.URL)
	if _, err := provider.Lookup(context.Background(), "Imagine", "John Lennon"); err == nil {
		t.Error("expected an error on server failure")
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stagescript/internal/storage"
)

// fakeServer mimics the sync API surface in memory so the client can be
// exercised without Postgres.
func fakeServer(t *testing.T) (*httptest.Server, map[string]json.RawMessage) {
	t.Helper()
	docs := map[string]json.RawMessage{}
	versions := map[string]int64{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		tok, err := signToken("test-secret", "test", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": tok})
	})
	mux.HandleFunc("/api/scripts", func(w http.ResponseWriter, r *http.Request) {
		var list []ScriptInfo
		var id int64
		for stableID := range docs {
			id++
			list = append(list, ScriptInfo{ID: id, StableID: stableID, Version: versions[stableID], UpdatedAt: time.Now()})
		}
		writeJSON(w, http.StatusOK, list)
	})
	mux.HandleFunc("/api/scripts/", func(w http.ResponseWriter, r *http.Request) {
		stableID := r.URL.Path[len("/api/scripts/"):]
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			if err := storage.ValidateDocument(body); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err)
				return
			}
			docs[stableID] = body
			versions[stableID]++
			writeJSON(w, http.StatusOK, map[string]any{"stable_id": stableID, "version": versions[stableID]})
		case http.MethodGet:
			doc, ok := docs[stableID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, ScriptEnvelope{StableID: stableID, Version: versions[stableID], UpdatedAt: time.Now(), Doc: doc})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, docs
}

func TestClientPushPullRoundTrip(t *testing.T) {
	srv, _ := fakeServer(t)
	c := NewClient(srv.URL+"/", "")
	ctx := context.Background()

	if _, err := c.FetchToken(ctx, "test"); err != nil {
		t.Fatalf("fetch token: %v", err)
	}
	if c.Token == "" {
		t.Fatalf("token not stored on client")
	}

	doc := storage.Document{
		Title:      "Play",
		Characters: []string{"Anna"},
		Locations:  []string{"Docks"},
		Scenes: [][]storage.SectionRecord{
			{{Type: storage.SectionTypeRawMD, Rawmd: "Lights up."}},
		},
	}
	ver, err := c.PushScript(ctx, "play-1", doc)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if ver != 1 {
		t.Fatalf("version = %d", ver)
	}

	got, gotVer, err := c.PullScript(ctx, "play-1")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if gotVer != 1 || got.Title != "Play" || len(got.Scenes) != 1 {
		t.Fatalf("round trip mismatch: ver=%d doc=%+v", gotVer, got)
	}

	// A second push bumps the version.
	if ver, err = c.PushScript(ctx, "play-1", doc); err != nil || ver != 2 {
		t.Fatalf("second push: ver=%d err=%v", ver, err)
	}

	list, err := c.ListScripts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].StableID != "play-1" {
		t.Fatalf("list = %+v", list)
	}
}

func TestClientPushRejectsInvalidDocument(t *testing.T) {
	srv, _ := fakeServer(t)
	c := NewClient(srv.URL, "")
	doc := storage.Document{
		Title: "Play",
		Scenes: [][]storage.SectionRecord{
			{{Type: "bogus"}},
		},
	}
	// Unknown section type fails server-side schema validation.
	if _, err := c.PushScript(context.Background(), "bad", doc); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestClientPullMissingScript(t *testing.T) {
	srv, _ := fakeServer(t)
	c := NewClient(srv.URL, "")
	if _, _, err := c.PullScript(context.Background(), "nope"); err == nil {
		t.Fatalf("expected not found")
	}
}

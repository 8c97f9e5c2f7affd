// SPDX-License-Identifier: Apache-2.0

package wikidata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*wikidata.Client, *[]url.Values) {
	t.Helper()
	var seen []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query())
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return wikidata.NewClient(wikidata.ClientParams{BaseURL: srv.URL}), &seen
}

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

func TestClient_Query(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantAPIFail bool
		errContains string
	}{
		{
			name:   "success indicator returns document",
			status: http.StatusOK,
			body:   `{"search":[],"success":1}`,
		},
		{
			name:        "missing success indicator is an api failure",
			status:      http.StatusOK,
			body:        `{"search":[]}`,
			wantErr:     true,
			wantAPIFail: true,
		},
		{
			name:        "error payload is reported",
			status:      http.StatusOK,
			body:        `{"error":{"code":"no-such-entity","info":"Could not find an entity with the ID \"Q0\"."}}`,
			wantErr:     true,
			wantAPIFail: true,
			errContains: "no-such-entity",
		},
		{
			name:        "non-2xx status is a transport error",
			status:      http.StatusServiceUnavailable,
			body:        `oops`,
			wantErr:     true,
			errContains: "status 503",
		},
		{
			name:        "invalid json is rejected",
			status:      http.StatusOK,
			body:        `<html>`,
			wantErr:     true,
			errContains: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			doc, err := client.Query(context.Background(), wikidata.Params{"action": "wbsearchentities"})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.JSONEq(t, tt.body, string(doc))
				return
			}
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.wantAPIFail, errors.Is(err, wikidata.ErrAPIFailure))
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestClient_QueryAPIErrorDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"param-missing","info":"ids required"}}`))
	})

	_, err := client.Query(context.Background(), wikidata.Params{"action": "wbgetentities"})
	var apiErr *wikidata.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "wbgetentities", apiErr.Action)
	assert.Equal(t, "param-missing", apiErr.Code)
	assert.Equal(t, "ids required", apiErr.Info)
}

func TestClient_SendsUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
		_, _ = w.Write([]byte(`{"success":1}`))
	}))
	defer srv.Close()

	client := wikidata.NewClient(wikidata.ClientParams{BaseURL: srv.URL, UserAgent: "test-agent/1.0"})
	_, err := client.Query(context.Background(), wikidata.Params{"action": "wbsearchentities"})
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", agent)
}

// ---------------------------------------------------------------------------
// Typed helpers
// ---------------------------------------------------------------------------

func TestClient_SearchEntities(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"search":[{"id":"Q95","label":"Google"},{"id":"Q9366","label":"Google Search"}],"success":1}`))
	})

	hits, err := client.SearchEntities(context.Background(), "Google", "en", 3)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Q95", hits[0].ID)
	assert.Equal(t, "Q9366", hits[1].ID)

	require.Len(t, *seen, 1)
	q := (*seen)[0]
	assert.Equal(t, "wbsearchentities", q.Get("action"))
	assert.Equal(t, "Google", q.Get("search"))
	assert.Equal(t, "en", q.Get("language"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "3", q.Get("limit"))
}

func TestClient_GetEntity(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"entities":{"Q95":{"id":"Q95","type":"item",
			"labels":{"en":{"language":"en","value":"Google"}},
			"claims":{"P856":[{"mainsnak":{"snaktype":"value","property":"P856","datatype":"url",
				"datavalue":{"value":"https://google.com","type":"string"}}}]}}},"success":1}`))
	})

	entity, err := client.GetEntity(context.Background(), "Q95", []string{"en", "de"})
	require.NoError(t, err)
	label, ok := entity.Label("en")
	assert.True(t, ok)
	assert.Equal(t, "Google", label)
	require.Len(t, entity.Claims["P856"], 1)
	site, err := entity.Claims["P856"][0].MainSnak.DataValue.StringValue()
	require.NoError(t, err)
	assert.Equal(t, "https://google.com", site)

	q := (*seen)[0]
	assert.Equal(t, "wbgetentities", q.Get("action"))
	assert.Equal(t, "en|de", q.Get("languages"))
	assert.Equal(t, "Q95", q.Get("ids"))
}

func TestClient_GetEntityMissing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"entities":{"Q0":{"id":"Q0","missing":""}},"success":1}`))
	})

	_, err := client.GetEntity(context.Background(), "Q0", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, wikidata.ErrEntityMissing)
}

func TestClient_GetLabels(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"entities":{"Q1":{"id":"Q1","labels":{"en":{"language":"en","value":"one"}}},
			"Q2":{"id":"Q2","labels":{}}},"success":1}`))
	})

	labels, err := client.GetLabels(context.Background(), "Q1", "Q2")
	require.NoError(t, err)
	one, ok := labels["Q1"].Label("en")
	assert.True(t, ok)
	assert.Equal(t, "one", one)
	_, ok = labels["Q2"].Label("en")
	assert.False(t, ok)

	q := (*seen)[0]
	assert.Equal(t, "labels", q.Get("props"))
	assert.Equal(t, "Q1|Q2", q.Get("ids"))
}

// ---------------------------------------------------------------------------
// DataValue decoding
// ---------------------------------------------------------------------------

func TestDataValue_Decoding(t *testing.T) {
	item := &wikidata.DataValue{Type: "wikibase-entityid", Value: []byte(`{"entity-type":"item","numeric-id":1234,"id":"Q1234"}`)}
	id, err := item.EntityID()
	require.NoError(t, err)
	assert.Equal(t, "Q1234", id)

	text := &wikidata.DataValue{Type: "monolingualtext", Value: []byte(`{"text":"Alphabet Inc.","language":"en"}`)}
	s, lang, err := text.MonolingualText()
	require.NoError(t, err)
	assert.Equal(t, "Alphabet Inc.", s)
	assert.Equal(t, "en", lang)

	bad := &wikidata.DataValue{Type: "wikibase-entityid", Value: []byte(`{"entity-type":"item"}`)}
	_, err = bad.EntityID()
	assert.Error(t, err)
}

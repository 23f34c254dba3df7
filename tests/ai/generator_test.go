package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/ai"
	"github.com/framelight/studio-api/internal/config"
)

// fakeModelServer answers generateContent calls with canned texts, one
// per call, in order. It records the prompt of every call it receives.
func fakeModelServer(t *testing.T, responses ...string) (*httptest.Server, *int, *[]string) {
	calls := 0
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, calls, len(responses), "unexpected extra model call")
		text := responses[calls]
		calls++

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompts = append(prompts, req.Contents[0].Parts[0].Text)
		}

		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls, &prompts
}

func newGenerator(baseURL, apiKey string) *ai.Generator {
	client := ai.NewClient(&config.AIConfig{
		BaseURL:        baseURL,
		Model:          "test-model",
		APIKey:         apiKey,
		RequestTimeout: 5,
	}, zap.NewNop())
	return ai.NewGenerator(client, zap.NewNop())
}

func TestGenerator_NotConfigured(t *testing.T) {
	gen := newGenerator("http://localhost:1", "")
	assert.False(t, gen.IsConfigured())

	_, err := gen.GenerateProposalItems(context.Background(), "Brand film", "")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	_, err = gen.GenerateShotList(context.Background(), "Shoot", "")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	_, err = gen.GenerateEquipmentList(context.Background(), "Shoot", "")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestGenerator_GenerateProposalItems(t *testing.T) {
	t.Run("parses a fenced response", func(t *testing.T) {
		server, calls, _ := fakeModelServer(t, "```json\n[{\"description\":\"Shooting day\",\"quantity\":1,\"unitPrice\":12000}]\n```")
		gen := newGenerator(server.URL, "test-key")

		items, err := gen.GenerateProposalItems(context.Background(), "Brand film", "playful")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Shooting day", items[0].Description)
		assert.Equal(t, 12000.0, items[0].UnitPrice)
		assert.Equal(t, 1, *calls)
	})

	t.Run("retries once on malformed output", func(t *testing.T) {
		server, calls, prompts := fakeModelServer(t,
			"Sorry, here is some prose without JSON",
			`[{"description":"Editing","quantity":2,"unitPrice":900}]`)
		gen := newGenerator(server.URL, "test-key")

		items, err := gen.GenerateProposalItems(context.Background(), "Brand film", "")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Editing", items[0].Description)
		assert.Equal(t, 2, *calls)
		require.Len(t, *prompts, 2)
		assert.NotEqual(t, (*prompts)[0], (*prompts)[1])
		assert.Contains(t, (*prompts)[1], "previous response was not a valid JSON array")
	})

	t.Run("gives up after the retry", func(t *testing.T) {
		server, calls, prompts := fakeModelServer(t, "not json", "still not json")
		gen := newGenerator(server.URL, "test-key")

		_, err := gen.GenerateProposalItems(context.Background(), "Brand film", "")
		require.Error(t, err)
		assert.Equal(t, 2, *calls)
		require.Len(t, *prompts, 2)
		assert.NotEqual(t, (*prompts)[0], (*prompts)[1])
	})

	t.Run("rejects items failing validation without extra calls beyond the retry", func(t *testing.T) {
		// Quantity zero violates the schema on both attempts
		server, calls, _ := fakeModelServer(t,
			`[{"description":"Bad","quantity":0,"unitPrice":100}]`,
			`[{"description":"Bad again","quantity":0,"unitPrice":100}]`)
		gen := newGenerator(server.URL, "test-key")

		_, err := gen.GenerateProposalItems(context.Background(), "Brand film", "")
		require.Error(t, err)
		assert.Equal(t, 2, *calls)
	})
}

func TestGenerator_GenerateShotList(t *testing.T) {
	server, _, _ := fakeModelServer(t,
		`Here is your shot list: [{"sceneNumber":1,"description":"Drone establisher","angle":"aerial","duration":"20s"},{"sceneNumber":2,"description":"Interview","angle":"medium"}] hope it helps!`)
	gen := newGenerator(server.URL, "test-key")

	scenes, err := gen.GenerateShotList(context.Background(), "Hotel promo", "sunrise exteriors")
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, 1, scenes[0].SceneNumber)
	assert.Equal(t, "Drone establisher", scenes[0].Description)
}

func TestGenerator_GenerateEquipmentList(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		server, _, _ := fakeModelServer(t, `["Camera body","Tripod","ND filters"]`)
		gen := newGenerator(server.URL, "test-key")

		equipment, err := gen.GenerateEquipmentList(context.Background(), "Outdoor shoot", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Camera body", "Tripod", "ND filters"}, equipment)
	})

	t.Run("empty list is an error", func(t *testing.T) {
		server, _, _ := fakeModelServer(t, `[]`)
		gen := newGenerator(server.URL, "test-key")

		_, err := gen.GenerateEquipmentList(context.Background(), "Outdoor shoot", "")
		assert.Error(t, err)
	})
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n[1,2]\n```", "[1,2]"},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around array", `Sure! Here you go: ["a","b"] enjoy`, `["a","b"]`},
		{"prose around object", `Result: {"ok":true}.`, `{"ok":true}`},
		{"no json at all", "nothing here", "nothing here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ai.ExtractJSON(tc.in))
		})
	}
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
)

func newAnthropic(t *testing.T, reply string, got *anthropicRequest) *AnthropicService {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []any{map[string]any{"type": "text", "text": reply}},
		})
	}))
	t.Cleanup(srv.Close)
	return NewAnthropicService("test-key", "claude-test").WithBaseURL(srv.URL)
}

func TestAnthropicChat_AlternaTurnos(t *testing.T) {
	var got anthropicRequest
	svc := newAnthropic(t, `{"message":"Inicia sesión","action":"LOGIN_USER_INTENT"}`, &got)

	out, err := svc.Chat(context.Background(), "mi clave es x", []dto.ChatTurn{
		{Sender: "bot", Text: "Hola, ¿en qué ayudo?"},
		{Sender: "user", Text: "quiero entrar"},
		{Sender: "user", Text: "a mi cuenta"},
		{Sender: "bot", Text: "Dame tu email"},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ChatActionLogin, out.Action)

	assert.Equal(t, "claude-test", got.Model)
	assert.Contains(t, got.System, "Green Thread Assistant")
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "quiero entrar\n\na mi cuenta", got.Messages[0].Content[0].Text)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "mi clave es x", got.Messages[2].Content[0].Text)
}

func TestAnthropicAnalyzeImage_BloqueDeImagen(t *testing.T) {
	var got anthropicRequest
	svc := newAnthropic(t, `{"name":"Tapete","material":"Cotton","region":"Bhadohi","price":"80","description":"Hecho a mano"}`, &got)

	draft, err := svc.AnalyzeImage(context.Background(), "aGVsbG8=", "image/webp", "USD")
	require.NoError(t, err)
	assert.Equal(t, "Tapete", draft.Name)
	assert.Equal(t, "80", draft.Price.String())

	require.Len(t, got.Messages, 1)
	content := got.Messages[0].Content
	require.Len(t, content, 2)
	assert.Equal(t, "image", content[0].Type)
	require.NotNil(t, content[0].Source)
	assert.Equal(t, "image/webp", content[0].Source.MediaType)
	assert.Equal(t, "text", content[1].Type)
}

func TestAnthropic_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()
	svc := NewAnthropicService("test-key", "m").WithBaseURL(srv.URL)

	_, err := svc.Chat(context.Background(), "hola", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

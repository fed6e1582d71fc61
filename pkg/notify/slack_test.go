package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slackCall struct {
	auth    string
	channel string
	text    string
}

func newSlackRecorder(t *testing.T, calls *[]slackCall, ok bool, apiErr string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Channel string `json:"channel"`
			Text    string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		*calls = append(*calls, slackCall{
			auth:    r.Header.Get("Authorization"),
			channel: payload.Channel,
			text:    payload.Text,
		})
		fmt.Fprintf(w, `{"ok": %t, "error": %q}`, ok, apiErr)
	}))
}

func TestSlackSend(t *testing.T) {
	var calls []slackCall
	srv := newSlackRecorder(t, &calls, true, "")
	defer srv.Close()

	s := NewSlack("xoxb-test", "C123")
	s.apiURL = srv.URL

	require.NoError(t, s.Send(context.Background(), testDigest()))

	// Intro first, then one message per table.
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer xoxb-test", calls[0].auth)
	assert.Equal(t, "C123", calls[0].channel)
	assert.Contains(t, calls[0].text, "Vztah znamení k ostatním znamení ke dni")
	assert.Contains(t, calls[0].text, "+ Alice je s Bob dnes kamarád!")
	assert.True(t, strings.HasPrefix(calls[1].text, "\n```\n"))
	assert.Contains(t, calls[1].text, "Percent")
}

func TestSlackSendChunksLongTables(t *testing.T) {
	var calls []slackCall
	srv := newSlackRecorder(t, &calls, true, "")
	defer srv.Close()

	s := NewSlack("xoxb-test", "C123")
	s.apiURL = srv.URL

	d := testDigest()
	d.Tables = []string{strings.Repeat("x", slackMessageLimit+10)}

	require.NoError(t, s.Send(context.Background(), d))
	// Intro plus two chunks.
	assert.Len(t, calls, 3)
}

func TestSlackSendAPIError(t *testing.T) {
	var calls []slackCall
	srv := newSlackRecorder(t, &calls, false, "channel_not_found")
	defer srv.Close()

	s := NewSlack("xoxb-test", "C123")
	s.apiURL = srv.URL

	err := s.Send(context.Background(), testDigest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

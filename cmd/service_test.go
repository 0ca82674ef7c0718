package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/isometry/line-alert-relay/internal/config"
	"github.com/isometry/line-alert-relay/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testChannelSecret = "channel-secret"
	testAccessToken   = "access-token"
	testAdmin         = "Uadmin"
)

type testCase struct {
	Name            string
	Method          string
	Path            string
	ReceivedRequest string
	Headers         map[string]string
	ExpectedStatus  int
	ExpectedBody    string
	ExpectedPushes  int
}

type fakeLine struct {
	mu     sync.Mutex
	pushes []string
}

func (f *fakeLine) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pushes...)
}

func newFakeLine(t *testing.T) (*httptest.Server, *fakeLine) {
	t.Helper()
	f := &fakeLine{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/bot/profile/{userId}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": r.PathValue("userId"), "displayName": "Alice"})
	})
	mux.HandleFunc("GET /v2/bot/group/{groupId}/member/{userId}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": r.PathValue("userId"), "displayName": "Alice (member)"})
	})
	mux.HandleFunc("GET /v2/bot/group/{groupId}/summary", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("POST /v2/bot/message/push", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Text string `json:"text"`
			} `json:"messages"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		f.mu.Lock()
		for _, m := range req.Messages {
			f.pushes = append(f.pushes, m.Text)
		}
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"sentMessages":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, f
}

func configure(t *testing.T, endpoint string) {
	t.Helper()
	require.NoError(t, config.SetDefaults())
	config.Line.AuthMode = "token"
	config.Line.ChannelSecret = testChannelSecret
	config.Line.ChannelAccessToken = testAccessToken
	config.Line.APIEndpoint = endpoint
	config.Relay.AdminRecipientID = testAdmin
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService(t *testing.T) {
	srv, fake := newFakeLine(t)
	configure(t, srv.URL)

	rtm, hdl, err := setup(context.Background())
	require.NoError(t, err)
	router := newRouter(rtm, config.Service.Path)

	groupEvent := `{"destination":"Ubot","events":[{"type":"message","webhookEventId":"01","message":{"type":"text","id":"1","text":"URGENT: server down"},"timestamp":1700000000000,"source":{"type":"group","groupId":"G1","userId":"U1"},"deliveryContext":{"isRedelivery":false}}]}`
	quietEvent := `{"destination":"Ubot","events":[{"type":"message","webhookEventId":"02","message":{"type":"text","id":"2","text":"lunch?"},"timestamp":1700000000000,"source":{"type":"user","userId":"U1"},"deliveryContext":{"isRedelivery":false}}]}`
	sign := func(body string) map[string]string {
		return map[string]string{validation.SignatureHeader: validation.NewChannelSecret(testChannelSecret).Sign([]byte(body))}
	}

	testCases := []testCase{
		{
			Name:           "health",
			Method:         http.MethodGet,
			Path:           "/",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   HealthMessage,
		},
		{
			Name:            "unsigned",
			Method:          http.MethodPost,
			Path:            "/webhook",
			ReceivedRequest: groupEvent,
			ExpectedStatus:  http.StatusUnauthorized,
		},
		{
			Name:            "wrong_method",
			Method:          http.MethodPut,
			Path:            "/webhook",
			ReceivedRequest: groupEvent,
			Headers:         sign(groupEvent),
			ExpectedStatus:  http.StatusMethodNotAllowed,
		},
		{
			Name:            "no_keyword",
			Method:          http.MethodPost,
			Path:            "/webhook",
			ReceivedRequest: quietEvent,
			Headers:         sign(quietEvent),
			ExpectedStatus:  http.StatusOK,
		},
		{
			Name:            "keyword_in_group",
			Method:          http.MethodPost,
			Path:            "/webhook",
			ReceivedRequest: groupEvent,
			Headers:         sign(groupEvent),
			ExpectedStatus:  http.StatusOK,
			ExpectedPushes:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(tt *testing.T) {
			req := httptest.NewRequest(tc.Method, tc.Path, strings.NewReader(tc.ReceivedRequest))
			for k, v := range tc.Headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(tt, tc.ExpectedStatus, rr.Code)
			if tc.ExpectedBody != "" {
				assert.Equal(tt, tc.ExpectedBody, rr.Body.String())
			}
		})
	}

	hdl.Wait()
	pushes := fake.texts()
	require.Len(t, pushes, 1)
	assert.Equal(t, "⚠️ Keyword alert: \"urgent\"\nFrom: Alice (member)\nIn: a group\nMessage: \"URGENT: server down\"", pushes[0])
}

func TestServe_Shutdown(t *testing.T) {
	srv, _ := newFakeLine(t)
	configure(t, srv.URL)

	_, hdl, err := setup(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	done := make(chan error, 1)
	go func() { done <- serve(ctx, s, hdl) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestServe_DrainIsBounded(t *testing.T) {
	unblock := make(chan struct{})
	lookupStarted := make(chan struct{}, 1)
	hung := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case lookupStarted <- struct{}{}:
		default:
		}
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
		http.Error(w, `{"message":"gone"}`, http.StatusServiceUnavailable)
	}))
	t.Cleanup(hung.Close)
	t.Cleanup(func() { close(unblock) })
	configure(t, hung.URL)

	grace := shutdownGrace
	shutdownGrace = 100 * time.Millisecond
	t.Cleanup(func() { shutdownGrace = grace })

	rtm, hdl, err := setup(context.Background())
	require.NoError(t, err)
	router := newRouter(rtm, config.Service.Path)

	body := `{"destination":"Ubot","events":[{"type":"message","message":{"type":"text","id":"1","text":"urgent"},"source":{"type":"user","userId":"U1"}}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(validation.SignatureHeader, validation.NewChannelSecret(testChannelSecret).Sign([]byte(body)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	<-lookupStarted

	ctx, cancel := context.WithCancel(context.Background())
	s := &http.Server{Addr: "127.0.0.1:0", Handler: router}
	done := make(chan error, 1)
	go func() { done <- serve(ctx, s, hdl) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("serve hung on a stuck alert task")
	}
}

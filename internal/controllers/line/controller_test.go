package line_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	awsctl "github.com/isometry/line-alert-relay/internal/controllers/aws"
	"github.com/isometry/line-alert-relay/internal/controllers/line"
	"github.com/isometry/line-alert-relay/internal/platform"
	"github.com/isometry/line-alert-relay/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-access-token"

type pushed struct {
	To       string `json:"to"`
	Messages []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"messages"`
}

func newLineAPI(t *testing.T) (*httptest.Server, *[]pushed) {
	t.Helper()
	var mu sync.Mutex
	pushes := &[]pushed{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/bot/profile/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("userId") != "U123" {
			http.Error(w, `{"message":"Not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": "U123", "displayName": "Alice"})
	})
	mux.HandleFunc("GET /v2/bot/group/{groupId}/member/{userId}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": r.PathValue("userId"), "displayName": "Alice in " + r.PathValue("groupId")})
	})
	mux.HandleFunc("GET /v2/bot/room/{roomId}/member/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("roomId") != "R1" {
			http.Error(w, `{"message":"Not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": r.PathValue("userId"), "displayName": "Alice in R1"})
	})
	mux.HandleFunc("GET /v2/bot/group/{groupId}/summary", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"groupId": r.PathValue("groupId"), "groupName": "Ops"})
	})
	mux.HandleFunc("POST /v2/bot/message/push", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			http.Error(w, `{"message":"Authentication failed"}`, http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var p pushed
		if err := json.Unmarshal(body, &p); err != nil {
			http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
			return
		}
		mu.Lock()
		*pushes = append(*pushes, p)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"sentMessages":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, pushes
}

func newController(t *testing.T, endpoint, token string) *line.Controller {
	t.Helper()
	ctl, err := line.NewController(
		line.WithChannelSecret("secret"),
		line.WithChannelAccessToken(token),
		line.WithEndpoint(endpoint),
		line.WithHTTPClient(http.DefaultClient))
	require.NoError(t, err)
	return ctl
}

func TestNewController_MissingCredentials(t *testing.T) {
	tests := []struct {
		Name string
		Opts []line.Option
	}{
		{Name: "no_secret", Opts: []line.Option{line.WithChannelAccessToken("t")}},
		{Name: "no_token", Opts: []line.Option{line.WithChannelSecret("s")}},
		{Name: "unsupported_mode", Opts: []line.Option{line.WithAuthMode("vault"), line.WithChannelSecret("s"), line.WithChannelAccessToken("t")}},
		{Name: "ssm_without_key", Opts: []line.Option{line.WithAuthMode(line.AuthModeSSM)}},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := line.NewController(tt.Opts...)
			assert.Error(t, err)
		})
	}
}

type fakeSSM struct {
	value string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(f.value)}}, nil
}

func TestNewController_SSM(t *testing.T) {
	awsCtl, err := awsctl.NewController(awsctl.WithParameterGetter(&fakeSSM{
		value: `{"channel_secret":"from-ssm","channel_access_token":"ssm-token"}`,
	}))
	require.NoError(t, err)

	ctl, err := line.NewController(
		line.WithAuthMode(line.AuthModeSSM),
		line.WithSSMKey("/line-alert-relay/credentials"),
		line.WithAWSController(awsCtl))
	require.NoError(t, err)
	assert.Equal(t, "ssm-token", ctl.ChannelAccessToken)
	assert.Equal(t, validation.ChannelSecret("from-ssm"), *ctl.ChannelSecret)
}

func TestController_VerifySignature(t *testing.T) {
	ctl := newController(t, "http://127.0.0.1:0", testToken)
	body := []byte(`{"events":[]}`)

	good := validation.NewChannelSecret("secret").Sign(body)
	assert.True(t, ctl.VerifySignature(body, good).Valid)
	assert.False(t, ctl.VerifySignature(body, "AAAA").Valid)
}

func TestController_Lookups(t *testing.T) {
	srv, _ := newLineAPI(t)
	ctl := newController(t, srv.URL, testToken)

	profile, err := ctl.GetUserProfile("U123")
	require.NoError(t, err)
	assert.Equal(t, &platform.Profile{UserID: "U123", DisplayName: "Alice"}, profile)

	_, err = ctl.GetUserProfile("U404")
	assert.Error(t, err)

	member, err := ctl.GetGroupMemberProfile("G1", "U999")
	require.NoError(t, err)
	assert.Equal(t, &platform.Profile{UserID: "U999", DisplayName: "Alice in G1"}, member)

	member, err = ctl.GetRoomMemberProfile("R1", "U999")
	require.NoError(t, err)
	assert.Equal(t, &platform.Profile{UserID: "U999", DisplayName: "Alice in R1"}, member)

	_, err = ctl.GetRoomMemberProfile("R404", "U999")
	assert.Error(t, err)

	group, err := ctl.GetGroupInfo("G1")
	require.NoError(t, err)
	assert.Equal(t, &platform.Group{GroupID: "G1", GroupName: "Ops"}, group)
}

func TestController_PushMessage(t *testing.T) {
	srv, pushes := newLineAPI(t)

	ctl := newController(t, srv.URL, testToken)
	require.NoError(t, ctl.PushMessage("Uadmin", platform.TextMessage{Text: "hello"}))
	require.Len(t, *pushes, 1)
	got := (*pushes)[0]
	assert.Equal(t, "Uadmin", got.To)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "text", got.Messages[0].Type)
	assert.Equal(t, "hello", got.Messages[0].Text)

	rejected := newController(t, srv.URL, "wrong-token")
	assert.Error(t, rejected.PushMessage("Uadmin", platform.TextMessage{Text: "hello"}))
	assert.Len(t, *pushes, 1)
}

func TestController_Timeout(t *testing.T) {
	unblock := make(chan struct{})
	hung := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(hung.Close)
	t.Cleanup(func() { close(unblock) })

	ctl, err := line.NewController(
		line.WithChannelSecret("secret"),
		line.WithChannelAccessToken(testToken),
		line.WithEndpoint(hung.URL),
		line.WithTimeout(100*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = ctl.GetUserProfile("U123")
	assert.Error(t, err)
	assert.Error(t, ctl.PushMessage("Uadmin", platform.TextMessage{Text: "hello"}))
	assert.Less(t, time.Since(start), 3*time.Second)
}

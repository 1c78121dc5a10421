package upstream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gachigage/config"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionRepo is an in-memory stand-in for the sqlite session store.
type memorySessionRepo struct {
	mu      sync.Mutex
	session *entity.Session
}

func (r *memorySessionRepo) Find(_ context.Context) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, repository.ErrSessionNotFound
	}
	copied := *r.session
	return &copied, nil
}

func (r *memorySessionRepo) Save(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.session = &copied
	return nil
}

func (r *memorySessionRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func newTestClient(t *testing.T, baseURL string, sessions repository.SessionRepository) service.BackendGateway {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = baseURL
	cfg.Upstream.Timeout = 2 * time.Second
	cfg.Upstream.ReceiptTimeout = 2 * time.Second

	gateway, err := NewClient(Params{
		Config:      cfg,
		SessionRepo: sessions,
		Logger:      slog.New(slog.NewTextHandler(testWriter{t}, nil)),
	})
	require.NoError(t, err)

	return gateway
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func seededSessions(access, refresh string) *memorySessionRepo {
	return &memorySessionRepo{session: &entity.Session{
		UserID:       1,
		AccessToken:  access,
		RefreshToken: refresh,
	}}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"username":"tester","gugun":"노원구","today_recommend":{"stores":[]},"past_recommend":[]}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access-token", "refresh-token"))

	home, err := gateway.RecommendationHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token", gotAuth)
	assert.Equal(t, "노원구", home.Gugun)
}

func TestClient_RequiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, &memorySessionRepo{})

	_, err := gateway.FetchUser(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}

func TestClient_RefreshesOnceOn401(t *testing.T) {
	var userCalls, refreshCalls int
	var refreshAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			userCalls++
			if r.Header.Get("Authorization") != "Bearer new-access" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":1,"username":"tester","sido":"서울","gugun":"노원구","monthly":[]}`))
		case "/user/refresh":
			refreshCalls++
			refreshAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accessToken":"new-access"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	sessions := seededSessions("stale-access", "refresh-token")
	gateway := newTestClient(t, server.URL, sessions)

	user, err := gateway.FetchUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tester", user.Username)

	// The refresh call carries the refresh token, and the original request is
	// retried exactly once.
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 2, userCalls)
	assert.Equal(t, "Bearer refresh-token", refreshAuth)

	// Only the access token rotates.
	session, err := sessions.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", session.AccessToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
}

func TestClient_RefreshFailureClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sessions := seededSessions("stale-access", "stale-refresh")
	gateway := newTestClient(t, server.URL, sessions)

	_, err := gateway.FetchUser(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	// The local session is gone; the next call demands a fresh login.
	_, err = sessions.Find(context.Background())
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestClient_SecondUnauthorizedDoesNotLoop(t *testing.T) {
	var userCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			userCalls++
			w.WriteHeader(http.StatusUnauthorized)
		case "/user/refresh":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accessToken":"still-rejected"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	sessions := seededSessions("stale-access", "refresh-token")
	gateway := newTestClient(t, server.URL, sessions)

	_, err := gateway.FetchUser(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.Equal(t, 2, userCalls)

	_, err = sessions.Find(context.Background())
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestClient_LoginMapsCredentialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"아이디 또는 비밀번호가 올바르지 않습니다."}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, &memorySessionRepo{})

	_, err := gateway.Login(context.Background(), "tester1", "wrongpw")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"a1","refresh_token":"r1","user_id":7}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, &memorySessionRepo{})

	out, err := gateway.Login(context.Background(), "tester1", "secret12")
	require.NoError(t, err)
	assert.Equal(t, "a1", out.AccessToken)
	assert.Equal(t, "r1", out.RefreshToken)
	assert.Equal(t, int64(7), out.UserID)
}

func TestClient_RegionChangeCooldownDetectedByMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"` + domainerrors.RegionChangeCooldownMessage + `"}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access", "refresh"))

	err := gateway.UpdateRegion(context.Background(), "서울", "도봉구")
	assert.ErrorIs(t, err, domainerrors.ErrRegionChangeCooldown)
}

func TestClient_EmptyRecommendationResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"place_mood":["조용해요"],"category":"커피 전문점","stores":[]}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access", "refresh"))

	_, err := gateway.RequestRecommendation(context.Background(), entity.RecommendationRequest{
		Region:        []string{"상계동"},
		PlaceCategory: "커피 전문점",
		PlaceMood:     []string{"조용해요"},
	}, false)
	assert.ErrorIs(t, err, domainerrors.ErrRecommendationEmpty)
}

func TestClient_WeatherQueryParam(t *testing.T) {
	var gotWeather string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWeather = r.URL.Query().Get("weather")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"place_mood":["조용해요"],"category":"커피 전문점","stores":[{"name":"카페","address_road":"서울 노원구","address_ex":"","phone":"02-123-4567","url":""}]}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access", "refresh"))

	result, err := gateway.RequestRecommendation(context.Background(), entity.RecommendationRequest{
		Region:        []string{"상계동"},
		PlaceCategory: "커피 전문점",
		PlaceMood:     []string{"조용해요"},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "true", gotWeather)
	assert.Len(t, result.Stores, 1)
}

func TestClient_UpstreamErrorPreservesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"영수증 정보가 일치하지 않습니다."}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access", "refresh"))

	err := gateway.VerifyReceipt(context.Background(), 3, entity.ReceiptFields{
		StoreName:  "슈니만두",
		Address:    "서울 노원구 동일로 1413",
		Phone:      "02-951-1234",
		VisitedAt:  "2024-05-11 12:46",
		TotalPrice: "12,000원",
	})

	var upstreamErr *domainerrors.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusBadRequest, upstreamErr.HTTPCode())
	assert.Equal(t, "영수증 정보가 일치하지 않습니다.", upstreamErr.Message())
}

func TestClient_TimeoutMapsToUpstreamTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Timeout = 50 * time.Millisecond

	gateway, err := NewClient(Params{
		Config:      cfg,
		SessionRepo: seededSessions("access", "refresh"),
		Logger:      slog.New(slog.NewTextHandler(testWriter{t}, nil)),
	})
	require.NoError(t, err)

	_, err = gateway.MissionBoard(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamTimeout)
}

func TestClient_ConnectFailureMapsToUnavailable(t *testing.T) {
	gateway := newTestClient(t, "http://127.0.0.1:1", &memorySessionRepo{})

	err := gateway.Signup(context.Background(), service.SignupInput{
		Identifier: "tester1",
		Password:   "secret12",
		Username:   "tester",
		Sido:       "서울",
		Gugun:      "노원구",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamUnavailable)
}

func TestClient_CheckIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/check", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"isDuplicate":true}`))
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, &memorySessionRepo{})

	available, err := gateway.CheckIdentifier(context.Background(), "tester1")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestClient_LargeSuccessBodyReadInFull(t *testing.T) {
	content := strings.Repeat("동네 가게 리뷰 ", 30)
	payload := make([]reviewPayload, 600)
	for i := range payload {
		entry := content
		payload[i] = reviewPayload{
			ReviewID:  int64(i + 1),
			MissionID: 1,
			StoreName: "슈니만두",
			Tags:      []int{1, 2},
			Content:   &entry,
		}
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.Greater(t, len(body), errorBodyLimit)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mission/review", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	gateway := newTestClient(t, server.URL, seededSessions("access", "refresh"))

	reviews, err := gateway.Reviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 600)
	assert.Equal(t, int64(600), reviews[599].ID)
}

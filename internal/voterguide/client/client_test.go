package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/voterguide/internal/voterguide/client/config"
	"github.com/iurnickita/voterguide/internal/voterguide/devicestore"
	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
)

// testAPI - поддельный API, считающий обращения к методам
type testAPI struct {
	mux  sync.Mutex
	hits map[string]int
}

func (a *testAPI) count(name string) int {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.hits[name]
}

func newTestAPI(t *testing.T, handlers map[string]http.HandlerFunc) (*testAPI, *httptest.Server) {
	t.Helper()

	api := &testAPI{hits: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/apis/v1/"), "/")
		api.mux.Lock()
		api.hits[name]++
		api.mux.Unlock()

		h, ok := handlers[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func newTestClient(srv *httptest.Server, store devicestore.Store) *Client {
	return NewClient(config.Config{BaseURL: srv.URL + "/apis/v1/", APIKey: "key"}, store, zap.NewNop())
}

func TestClient_Validation(t *testing.T) {
	api, srv := newTestAPI(t, nil)
	c := newTestClient(srv, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		ep      endpoint.Name
		params  map[string]string
		wantErr error
	}{
		{
			name:    "unknown endpoint",
			ep:      endpoint.Name(1000),
			wantErr: ErrUnknownEndpoint,
		}, {
			name:    "missing parameter",
			ep:      endpoint.VoterAddressSave,
			params:  map[string]string{"api_key": "key", "voter_device_id": "id"},
			wantErr: ErrParameterMismatch,
		}, {
			name:    "extra parameter",
			ep:      endpoint.VoterCount,
			params:  map[string]string{"voter_device_id": "id"},
			wantErr: ErrParameterMismatch,
		}, {
			name:    "superset",
			ep:      endpoint.CandidatesRetrieve,
			params:  map[string]string{"office_we_vote_id": "o1", "api_key": "key"},
			wantErr: ErrParameterMismatch,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := c.Call(ctx, test.ep, test.params, nil)
			require.ErrorIs(t, err, test.wantErr)
			require.NotErrorIs(t, err, ErrTransportFailure)
		})
	}

	api.mux.Lock()
	defer api.mux.Unlock()
	require.Empty(t, api.hits, "validation failures must not reach the network")
}

func TestClient_VoterCount(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		want      int
		wantErr   error
		wantCode  int
		wantState string
	}{
		{
			name:    "success",
			handler: jsonHandler(`{"success": true, "voter_count": 42}`),
			want:    42,
		}, {
			name:      "success flag false",
			handler:   jsonHandler(`{"success": false, "status": "VOTER_COUNT_FAILED"}`),
			wantErr:   ErrApplicationFailure,
			wantState: "VOTER_COUNT_FAILED",
		}, {
			name:    "success flag missing",
			handler: jsonHandler(`{"voter_count": 42}`),
			wantErr: ErrApplicationFailure,
		}, {
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr:  ErrTransportFailure,
			wantCode: http.StatusInternalServerError,
		}, {
			name:     "malformed body",
			handler:  jsonHandler(`<html>`),
			wantErr:  ErrTransportFailure,
			wantCode: http.StatusOK,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, srv := newTestAPI(t, map[string]http.HandlerFunc{"voterCount": test.handler})
			c := newTestClient(srv, nil)

			count, err := c.VoterCount(context.Background())
			if test.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, test.want, count)
				return
			}
			require.ErrorIs(t, err, test.wantErr)

			var transportErr *TransportError
			if errors.As(err, &transportErr) {
				require.Equal(t, test.wantCode, transportErr.StatusCode)
				require.Equal(t, endpoint.VoterCount, transportErr.Endpoint)
			}
			var appErr *ApplicationError
			if errors.As(err, &appErr) {
				require.Equal(t, test.wantState, appErr.Status)
				require.NotEmpty(t, appErr.Body)
			}
		})
	}
}

func TestClient_TransportDown(t *testing.T) {
	_, srv := newTestAPI(t, nil)
	c := newTestClient(srv, nil)
	srv.Close()

	_, err := c.OrganizationCount(context.Background())
	require.ErrorIs(t, err, ErrTransportFailure)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Zero(t, transportErr.StatusCode)
	require.Error(t, transportErr.Unwrap())
}

func TestClient_OrganizationCount(t *testing.T) {
	_, srv := newTestAPI(t, map[string]http.HandlerFunc{
		"organizationCount": jsonHandler(`{"success": true, "organization_count": 7}`),
	})
	c := newTestClient(srv, nil)

	count, err := c.OrganizationCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
}

func deviceHandlers(voterCreate http.HandlerFunc) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"deviceIdGenerate": jsonHandler(`{"success": true, "voter_device_id": "device-1"}`),
		"voterCreate":      voterCreate,
		"voterCount": func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(devicestore.CookieName)
			if err != nil {
				http.Error(w, "no cookie", http.StatusUnauthorized)
				return
			}
			if cookie.Value != "device-1" {
				http.Error(w, "wrong cookie", http.StatusForbidden)
				return
			}
			jsonHandler(`{"success": true, "voter_count": 1}`)(w, r)
		},
	}
}

func voterCreateOK(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("voter_device_id") != "device-1" {
		jsonHandler(`{"success": false, "status": "VALID_VOTER_DEVICE_ID_MISSING"}`)(w, r)
		return
	}
	jsonHandler(`{"success": true, "voter_device_id": "device-1", "voter_we_vote_id": "wv01voter1"}`)(w, r)
}

func TestClient_DeviceIDConcurrent(t *testing.T) {
	api, srv := newTestAPI(t, deviceHandlers(voterCreateOK))
	store := devicestore.NewStoreVar()
	c := newTestClient(srv, store)
	ctx := context.Background()

	const callers = 8
	ids := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = c.DeviceID(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "device-1", ids[i])
	}
	require.Equal(t, 1, api.count("deviceIdGenerate"))
	require.Equal(t, 1, api.count("voterCreate"))

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "device-1", stored)

	// cookie уходит с каждым запросом
	count, err := c.VoterCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestClient_DeviceIDVoterCreateFails(t *testing.T) {
	api, srv := newTestAPI(t, deviceHandlers(jsonHandler(`{"success": false, "status": "VOTER_NOT_CREATED"}`)))
	store := devicestore.NewStoreVar()
	c := newTestClient(srv, store)
	ctx := context.Background()

	_, err := c.DeviceID(ctx)
	require.ErrorIs(t, err, ErrApplicationFailure)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)

	// следующая попытка снова обращается к API
	_, err = c.DeviceID(ctx)
	require.Error(t, err)
	require.Equal(t, 2, api.count("deviceIdGenerate"))
}

func TestClient_InitReset(t *testing.T) {
	api, srv := newTestAPI(t, deviceHandlers(voterCreateOK))
	store := devicestore.NewStoreVar()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "stored-id"))

	c := newTestClient(srv, store)
	require.NoError(t, c.Init(ctx))

	id, err := c.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, "stored-id", id)
	require.Zero(t, api.count("deviceIdGenerate"))

	require.NoError(t, c.Reset(ctx))
	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)

	id, err = c.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, "device-1", id)
	require.Equal(t, 1, api.count("deviceIdGenerate"))
}

func TestClient_ResetDuringCreation(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	handlers := deviceHandlers(voterCreateOK)
	generate := handlers["deviceIdGenerate"]
	handlers["deviceIdGenerate"] = func(w http.ResponseWriter, r *http.Request) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		generate(w, r)
	}
	api, srv := newTestAPI(t, handlers)
	store := devicestore.NewStoreVar()
	c := newTestClient(srv, store)
	ctx := context.Background()

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := c.DeviceID(ctx)
		done <- result{id, err}
	}()

	<-entered
	require.NoError(t, c.Reset(ctx))
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "device-1", res.id)

	// сброшенный идентификатор не возвращается ни в кэш, ни в хранилище
	require.Empty(t, c.cachedDeviceID())
	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)

	id, err := c.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, "device-1", id)
	require.Equal(t, 2, api.count("deviceIdGenerate"))
	require.Equal(t, "device-1", c.cachedDeviceID())
}

func TestClient_DeviceIDContextCanceled(t *testing.T) {
	release := make(chan struct{})
	_, srv := newTestAPI(t, map[string]http.HandlerFunc{
		"deviceIdGenerate": func(w http.ResponseWriter, r *http.Request) {
			<-release
			jsonHandler(`{"success": true, "voter_device_id": "device-1"}`)(w, r)
		},
		"voterCreate": voterCreateOK,
	})
	defer close(release)
	c := newTestClient(srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.DeviceID(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_VoterAddressSave(t *testing.T) {
	var gotMethod, gotAddress, gotKey string
	handlers := deviceHandlers(voterCreateOK)
	handlers["voterAddressSave"] = func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAddress = r.PostFormValue("address")
		gotKey = r.PostFormValue("api_key")
		jsonHandler(`{"success": true, "status": "VOTER_ADDRESS_SAVED"}`)(w, r)
	}
	_, srv := newTestAPI(t, handlers)
	c := newTestClient(srv, nil)

	err := c.VoterAddressSave(context.Background(), "1 Dr Carlton B Goodlett Pl, San Francisco")
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "1 Dr Carlton B Goodlett Pl, San Francisco", gotAddress)
	require.Equal(t, "key", gotKey)
}

func TestClient_CompleteParams(t *testing.T) {
	_, srv := newTestAPI(t, deviceHandlers(voterCreateOK))
	c := newTestClient(srv, nil)
	ctx := context.Background()

	params, err := c.CompleteParams(ctx, endpoint.ElectionsRetrieve, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"api_key": "key", "voter_device_id": "device-1"}, params)

	params, err = c.CompleteParams(ctx, endpoint.VoterCount, map[string]string{"x": "y"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"x": "y"}, params)

	_, err = c.CompleteParams(ctx, endpoint.Name(-5), nil)
	require.ErrorIs(t, err, ErrUnknownEndpoint)
}

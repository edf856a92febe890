// Пакет client. Клиент We Vote API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/iurnickita/voterguide/internal/voterguide/client/config"
	"github.com/iurnickita/voterguide/internal/voterguide/devicestore"
	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
	"github.com/iurnickita/voterguide/internal/voterguide/model"
)

const deviceIDKey = "voter_device_id"

// Client - клиент API. Безопасен для одновременного использования
type Client struct {
	http   *resty.Client
	apiKey string
	store  devicestore.Store
	zaplog *zap.Logger

	mux        sync.RWMutex
	deviceID   string
	generation uint64 // растет при каждом Reset
	storeMux   sync.Mutex
	group      singleflight.Group
}

// NewClient создает клиента API
func NewClient(cfg config.Config, store devicestore.Store, zaplog *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if store == nil {
		store = devicestore.NewStoreVar()
	}
	if zaplog == nil {
		zaplog = zap.NewNop()
	}

	c := &Client{
		apiKey: cfg.APIKey,
		store:  store,
		zaplog: zaplog,
	}
	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetLogger(zaplog.Sugar()).
		OnAfterResponse(c.logResponse)

	return c
}

func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	c.zaplog.Debug("got API response",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL),
		zap.Int("code", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)
	return nil
}

// Call вызывает метод API. Параметры проверяются до отправки запроса.
// Тело успешного ответа декодируется в out, если out не nil
func (c *Client) Call(ctx context.Context, name endpoint.Name, params map[string]string, out any) error {
	d, err := endpoint.Resolve(name)
	if err != nil {
		return err
	}
	if err := d.Validate(params); err != nil {
		return err
	}

	req := c.http.R().SetContext(ctx)
	if id := c.cachedDeviceID(); id != "" {
		req.SetCookie(&http.Cookie{Name: devicestore.CookieName, Value: id})
	}
	if d.Method == http.MethodPost {
		req.SetFormData(params)
	} else {
		req.SetQueryParams(params)
	}

	resp, err := req.Execute(d.Method, d.Path)
	if err != nil {
		return &TransportError{Endpoint: name, Err: err}
	}
	if !resp.IsSuccess() {
		return &TransportError{
			Endpoint:   name,
			StatusCode: resp.StatusCode(),
			Message:    responseMessage(resp),
		}
	}

	body := resp.Body()
	if d.SuccessFlag {
		var status model.Status
		if err := json.Unmarshal(body, &status); err != nil {
			return &TransportError{Endpoint: name, StatusCode: resp.StatusCode(), Message: "malformed response body", Err: err}
		}
		if !status.Success {
			return &ApplicationError{Endpoint: name, Status: status.Status, Body: body}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Endpoint: name, StatusCode: resp.StatusCode(), Message: "malformed response body", Err: err}
	}
	return nil
}

func responseMessage(resp *resty.Response) string {
	msg := strings.TrimSpace(string(resp.Body()))
	if msg == "" {
		return http.StatusText(resp.StatusCode())
	}
	const maxLen = 256
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

// Идентификатор устройства

// Init загружает сохраненный идентификатор устройства
func (c *Client) Init(ctx context.Context) error {
	id, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load voter device id: %w", err)
	}
	c.setDeviceID(id)
	return nil
}

// Reset забывает идентификатор устройства
func (c *Client) Reset(ctx context.Context) error {
	c.storeMux.Lock()
	defer c.storeMux.Unlock()

	c.mux.Lock()
	c.deviceID = ""
	c.generation++
	c.mux.Unlock()

	c.group.Forget(deviceIDKey)
	return c.store.Clear(ctx)
}

// DeviceID возвращает идентификатор устройства, при первом обращении создает его.
// Одновременные первые обращения разделяют один запрос к API
func (c *Client) DeviceID(ctx context.Context) (string, error) {
	if id := c.cachedDeviceID(); id != "" {
		return id, nil
	}

	ch := c.group.DoChan(deviceIDKey, func() (any, error) {
		if id := c.cachedDeviceID(); id != "" {
			return id, nil
		}
		// создание не прерывается отменой контекста одного из ожидающих
		return c.createDeviceID(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) createDeviceID(ctx context.Context) (string, error) {
	c.mux.RLock()
	generation := c.generation
	c.mux.RUnlock()

	var generated model.DeviceID
	if err := c.Call(ctx, endpoint.DeviceIDGenerate, nil, &generated); err != nil {
		return "", err
	}
	if generated.VoterDeviceID == "" {
		return "", &ApplicationError{Endpoint: endpoint.DeviceIDGenerate, Status: "EMPTY_VOTER_DEVICE_ID"}
	}

	var voter model.Voter
	params := map[string]string{endpoint.ParamVoterDeviceID: generated.VoterDeviceID}
	if err := c.Call(ctx, endpoint.VoterCreate, params, &voter); err != nil {
		return "", err
	}

	c.zaplog.Info("voter created", zap.String("voter_we_vote_id", voter.VoterWeVoteID))

	c.storeMux.Lock()
	defer c.storeMux.Unlock()

	// Reset во время создания: идентификатор не сохраняется
	c.mux.RLock()
	stale := c.generation != generation
	c.mux.RUnlock()
	if stale {
		c.zaplog.Info("voter device id discarded after reset")
		return generated.VoterDeviceID, nil
	}

	if err := c.store.Save(ctx, generated.VoterDeviceID); err != nil {
		return "", fmt.Errorf("save voter device id: %w", err)
	}
	c.setDeviceID(generated.VoterDeviceID)
	return generated.VoterDeviceID, nil
}

func (c *Client) cachedDeviceID() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.deviceID
}

func (c *Client) setDeviceID(id string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.deviceID = id
}

// CompleteParams дополняет params идентификатором устройства и ключом API,
// если метод их требует, а вызывающий их не передал
func (c *Client) CompleteParams(ctx context.Context, name endpoint.Name, params map[string]string) (map[string]string, error) {
	d, err := endpoint.Resolve(name)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]string, len(d.Params))
	for k, v := range params {
		completed[k] = v
	}
	if _, ok := completed[endpoint.ParamAPIKey]; !ok && d.Requires(endpoint.ParamAPIKey) {
		completed[endpoint.ParamAPIKey] = c.apiKey
	}
	if _, ok := completed[endpoint.ParamVoterDeviceID]; !ok && d.Requires(endpoint.ParamVoterDeviceID) {
		id, err := c.DeviceID(ctx)
		if err != nil {
			return nil, err
		}
		completed[endpoint.ParamVoterDeviceID] = id
	}
	return completed, nil
}

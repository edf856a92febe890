package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	netutils "github.com/iurnickita/voterguide/internal/common/net_utils"
)

func TestStubAPI(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("API_KEY", "")

	addr, err := netutils.GetFreeAddr()
	require.NoError(t, err)

	// сервер не останавливается до конца процесса тестов
	go run([]string{"-a", addr, "-l", "error"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, netutils.WaitForAddr(ctx, addr))

	var body struct {
		Success       bool   `json:"success"`
		VoterDeviceID string `json:"voter_device_id"`
	}
	resp, err := resty.New().R().
		SetResult(&body).
		Get("http://" + addr + "/apis/v1/deviceIdGenerate/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.True(t, body.Success)
	require.NotEmpty(t, body.VoterDeviceID)
}

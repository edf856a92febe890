package config

import "time"

const (
	DefaultBaseURL = "http://localhost:8000/apis/v1/"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

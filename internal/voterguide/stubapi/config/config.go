package config

const (
	DefaultServerAddr  = "localhost:8000"
	DefaultTokenSecret = "stubapisecretkey"
)

type Config struct {
	ServerAddr  string
	APIKey      string
	TokenSecret string
}

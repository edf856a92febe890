package config

const (
	StoreTypeVar string = "0"
	StoreTypeDB  string = "2"
)

type Config struct {
	StoreType string
	DBDsn     string
}

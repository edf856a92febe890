// Пакет devicestore. Хранение идентификатора устройства на стороне клиента
package devicestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/iurnickita/voterguide/internal/voterguide/devicestore/config"
)

// CookieName - имя cookie с идентификатором устройства
const CookieName = "voter_device_id"

// Store - интерфейс хранилища. Пустая строка из Load означает, что идентификатора нет
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// NewStore создает хранилище по конфигурации
func NewStore(cfg config.Config) (Store, error) {
	if cfg.StoreType == config.StoreTypeFile && cfg.Filename != "" {
		return NewStoreFile(cfg)
	}
	return NewStoreVar(), nil
}

// Реализация с хранением в переменной

type StoreVar struct {
	mux *sync.Mutex
	id  string
}

func NewStoreVar() *StoreVar {
	return &StoreVar{mux: &sync.Mutex{}}
}

func (s *StoreVar) Load(ctx context.Context) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.id, nil
}

func (s *StoreVar) Save(ctx context.Context, id string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.id = id
	return nil
}

func (s *StoreVar) Clear(ctx context.Context) error {
	return s.Save(ctx, "")
}

// Реализация с хранением в файле

type StoreFile struct {
	mux      *sync.Mutex
	filename string
}

// FileJSON - запись cookie в файле
type FileJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewStoreFile(cfg config.Config) (*StoreFile, error) {
	// проверяем, что файл доступен на запись
	file, err := os.OpenFile(cfg.Filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}

	return &StoreFile{
		mux:      &sync.Mutex{},
		filename: cfg.Filename,
	}, nil
}

func (s *StoreFile) Load(ctx context.Context) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := os.ReadFile(s.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}

	var fileJSON FileJSON
	if err := json.Unmarshal(data, &fileJSON); err != nil {
		return "", err
	}
	if fileJSON.Name != CookieName {
		return "", nil
	}
	return fileJSON.Value, nil
}

func (s *StoreFile) Save(ctx context.Context, id string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := json.Marshal(&FileJSON{Name: CookieName, Value: id})
	if err != nil {
		return err
	}
	return os.WriteFile(s.filename, append(data, '\n'), 0600)
}

func (s *StoreFile) Clear(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	// пустой файл - нет идентификатора
	return os.WriteFile(s.filename, nil, 0600)
}

// Пакет repository. Хранилище тестового API
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iurnickita/voterguide/internal/voterguide/model"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi/repository/config"
)

// Интерфейс

type Repository interface {
	CreateVoter(ctx context.Context, deviceCode string) (model.Voter, error)
	GetVoter(ctx context.Context, deviceCode string) (model.Voter, error)
	VoterCount(ctx context.Context) (int, error)
	SaveAddress(ctx context.Context, deviceCode, address string) error
	GetAddress(ctx context.Context, deviceCode string) (string, error)
	OrganizationCount(ctx context.Context) (int, error)
	Elections(ctx context.Context) ([]model.Election, error)
	BallotItems(ctx context.Context, electionID string) ([]model.BallotItem, error)
	Candidates(ctx context.Context, officeWeVoteID string) ([]model.Candidate, error)
	Ping(ctx context.Context) error
}

var (
	ErrVoterNotFound = errors.New("voter not found")
)

func newErrVoterNotFound(deviceCode string) error {
	return fmt.Errorf("%w for device code = %.8s...", ErrVoterNotFound, deviceCode)
}

func NewStore(cfg config.Config) (Repository, error) {
	if cfg.StoreType == config.StoreTypeDB && cfg.DBDsn != "" {
		return NewStoreDB(cfg)
	}
	return NewStoreVar(cfg)
}

// Реализация с хранением в переменной

type voterVar struct {
	id      int64
	address string
}

type StoreVar struct {
	mux    *sync.Mutex
	voters map[string]*voterVar
	lastID int64
}

func NewStoreVar(cfg config.Config) (*StoreVar, error) {
	return &StoreVar{
		mux:    &sync.Mutex{},
		voters: make(map[string]*voterVar),
	}, nil
}

func (s *StoreVar) CreateVoter(ctx context.Context, deviceCode string) (model.Voter, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	v, ok := s.voters[deviceCode]
	if !ok {
		s.lastID++
		v = &voterVar{id: s.lastID}
		s.voters[deviceCode] = v
	}
	return model.Voter{VoterID: v.id, VoterWeVoteID: voterWeVoteID(v.id)}, nil
}

func (s *StoreVar) GetVoter(ctx context.Context, deviceCode string) (model.Voter, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	v, ok := s.voters[deviceCode]
	if !ok {
		return model.Voter{}, newErrVoterNotFound(deviceCode)
	}
	return model.Voter{VoterID: v.id, VoterWeVoteID: voterWeVoteID(v.id)}, nil
}

func (s *StoreVar) VoterCount(ctx context.Context) (int, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.voters), nil
}

func (s *StoreVar) SaveAddress(ctx context.Context, deviceCode, address string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	v, ok := s.voters[deviceCode]
	if !ok {
		return newErrVoterNotFound(deviceCode)
	}
	v.address = address
	return nil
}

func (s *StoreVar) GetAddress(ctx context.Context, deviceCode string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	v, ok := s.voters[deviceCode]
	if !ok {
		return "", newErrVoterNotFound(deviceCode)
	}
	return v.address, nil
}

func (s *StoreVar) OrganizationCount(ctx context.Context) (int, error) {
	return len(seedOrganizations), nil
}

func (s *StoreVar) Elections(ctx context.Context) ([]model.Election, error) {
	return append([]model.Election(nil), seedElections...), nil
}

// BallotItems возвращает позиции выборов electionID, при пустом electionID - все
func (s *StoreVar) BallotItems(ctx context.Context, electionID string) ([]model.BallotItem, error) {
	var items []model.BallotItem
	for _, item := range seedBallotItems {
		if electionID == "" || item.GoogleCivicElectionID == electionID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *StoreVar) Candidates(ctx context.Context, officeWeVoteID string) ([]model.Candidate, error) {
	var candidates []model.Candidate
	for _, c := range seedCandidates {
		if c.OfficeWeVoteID == officeWeVoteID {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (s *StoreVar) Ping(ctx context.Context) error {
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iurnickita/voterguide/internal/voterguide/model"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi/repository/config"
)

// Реализация с хранением в базе данных

type StoreDB struct {
	database *sql.DB
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS voter (" +
		" id BIGSERIAL PRIMARY KEY," +
		" device_code VARCHAR (88) UNIQUE NOT NULL," +
		" address TEXT NOT NULL DEFAULT ''" +
		" );",
	"CREATE TABLE IF NOT EXISTS organization (" +
		" we_vote_id VARCHAR (32) PRIMARY KEY" +
		" );",
	"CREATE TABLE IF NOT EXISTS election (" +
		" google_civic_election_id VARCHAR (16) PRIMARY KEY," +
		" election_name VARCHAR (255) NOT NULL," +
		" election_day_text VARCHAR (10) NOT NULL," +
		" state_code VARCHAR (2) NOT NULL" +
		" );",
	"CREATE TABLE IF NOT EXISTS ballot_item (" +
		" we_vote_id VARCHAR (32) PRIMARY KEY," +
		" kind_of_ballot_item VARCHAR (16) NOT NULL," +
		" display_name VARCHAR (255) NOT NULL," +
		" google_civic_election_id VARCHAR (16) NOT NULL" +
		" );",
	"CREATE TABLE IF NOT EXISTS candidate (" +
		" we_vote_id VARCHAR (32) PRIMARY KEY," +
		" display_name VARCHAR (255) NOT NULL," +
		" party VARCHAR (64) NOT NULL," +
		" office_we_vote_id VARCHAR (32) NOT NULL" +
		" );",
}

func NewStoreDB(cfg config.Config) (*StoreDB, error) {
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	s := &StoreDB{database: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate создает таблицы и заполняет справочники
func (s *StoreDB) migrate(ctx context.Context) error {
	tx, err := s.database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range schema {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	for _, org := range seedOrganizations {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO organization (we_vote_id) VALUES ($1) ON CONFLICT DO NOTHING",
			org); err != nil {
			return err
		}
	}
	for _, e := range seedElections {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO election (google_civic_election_id, election_name, election_day_text, state_code)"+
				" VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			e.GoogleCivicElectionID, e.ElectionName, e.ElectionDate, e.StateCode); err != nil {
			return err
		}
	}
	for _, item := range seedBallotItems {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ballot_item (we_vote_id, kind_of_ballot_item, display_name, google_civic_election_id)"+
				" VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			item.WeVoteID, item.KindOfBallotItem, item.BallotItemDisplayName, item.GoogleCivicElectionID); err != nil {
			return err
		}
	}
	for _, c := range seedCandidates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO candidate (we_vote_id, display_name, party, office_we_vote_id)"+
				" VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			c.WeVoteID, c.BallotItemDisplayName, c.Party, c.OfficeWeVoteID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *StoreDB) CreateVoter(ctx context.Context, deviceCode string) (model.Voter, error) {
	// пустой UPDATE нужен, чтобы RETURNING вернул существующую строку
	var id int64
	err := s.database.QueryRowContext(ctx,
		"INSERT INTO voter (device_code) VALUES ($1)"+
			" ON CONFLICT (device_code) DO UPDATE SET device_code = EXCLUDED.device_code"+
			" RETURNING id",
		deviceCode).Scan(&id)
	if err != nil {
		return model.Voter{}, err
	}
	return model.Voter{VoterID: id, VoterWeVoteID: voterWeVoteID(id)}, nil
}

func (s *StoreDB) GetVoter(ctx context.Context, deviceCode string) (model.Voter, error) {
	var id int64
	err := s.database.QueryRowContext(ctx,
		"SELECT id FROM voter WHERE device_code = $1",
		deviceCode).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Voter{}, newErrVoterNotFound(deviceCode)
	}
	if err != nil {
		return model.Voter{}, err
	}
	return model.Voter{VoterID: id, VoterWeVoteID: voterWeVoteID(id)}, nil
}

func (s *StoreDB) VoterCount(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM voter")
}

func (s *StoreDB) SaveAddress(ctx context.Context, deviceCode, address string) error {
	res, err := s.database.ExecContext(ctx,
		"UPDATE voter SET address = $2 WHERE device_code = $1",
		deviceCode, address)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return newErrVoterNotFound(deviceCode)
	}
	return nil
}

func (s *StoreDB) GetAddress(ctx context.Context, deviceCode string) (string, error) {
	var address string
	err := s.database.QueryRowContext(ctx,
		"SELECT address FROM voter WHERE device_code = $1",
		deviceCode).Scan(&address)
	if errors.Is(err, sql.ErrNoRows) {
		return "", newErrVoterNotFound(deviceCode)
	}
	return address, err
}

func (s *StoreDB) OrganizationCount(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM organization")
}

func (s *StoreDB) count(ctx context.Context, query string) (int, error) {
	var n int
	err := s.database.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

func (s *StoreDB) Elections(ctx context.Context) ([]model.Election, error) {
	rows, err := s.database.QueryContext(ctx,
		"SELECT google_civic_election_id, election_name, election_day_text, state_code"+
			" FROM election ORDER BY election_day_text")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elections []model.Election
	for rows.Next() {
		var e model.Election
		if err := rows.Scan(&e.GoogleCivicElectionID, &e.ElectionName, &e.ElectionDate, &e.StateCode); err != nil {
			return nil, err
		}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}

func (s *StoreDB) BallotItems(ctx context.Context, electionID string) ([]model.BallotItem, error) {
	rows, err := s.database.QueryContext(ctx,
		"SELECT we_vote_id, kind_of_ballot_item, display_name, google_civic_election_id"+
			" FROM ballot_item WHERE $1 = '' OR google_civic_election_id = $1"+
			" ORDER BY we_vote_id",
		electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.BallotItem
	for rows.Next() {
		var item model.BallotItem
		if err := rows.Scan(&item.WeVoteID, &item.KindOfBallotItem, &item.BallotItemDisplayName, &item.GoogleCivicElectionID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *StoreDB) Candidates(ctx context.Context, officeWeVoteID string) ([]model.Candidate, error) {
	rows, err := s.database.QueryContext(ctx,
		"SELECT we_vote_id, display_name, party, office_we_vote_id"+
			" FROM candidate WHERE office_we_vote_id = $1 ORDER BY we_vote_id",
		officeWeVoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.WeVoteID, &c.BallotItemDisplayName, &c.Party, &c.OfficeWeVoteID); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *StoreDB) Ping(ctx context.Context) error {
	return s.database.PingContext(ctx)
}

func (s *StoreDB) Close() error {
	return s.database.Close()
}

// Пакет model. Модели данных API
package model

// Status - общие поля любого ответа API
type Status struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
}

// DeviceID - ответ deviceIdGenerate
type DeviceID struct {
	Status
	VoterDeviceID string `json:"voter_device_id"`
}

// Voter - избиратель
type Voter struct {
	Status
	VoterDeviceID string `json:"voter_device_id,omitempty"`
	VoterWeVoteID string `json:"voter_we_vote_id,omitempty"`
	VoterID       int64  `json:"voter_id,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	IsSignedIn    bool   `json:"is_signed_in"`
}

// VoterCount - ответ voterCount
type VoterCount struct {
	Status
	VoterCount int `json:"voter_count"`
}

// OrganizationCount - ответ organizationCount
type OrganizationCount struct {
	Status
	OrganizationCount int `json:"organization_count"`
}

// VoterAddress - адрес избирателя
type VoterAddress struct {
	Status
	VoterDeviceID string `json:"voter_device_id,omitempty"`
	Address       string `json:"address"`
}

// Election - выборы
type Election struct {
	GoogleCivicElectionID string `json:"google_civic_election_id"`
	ElectionName          string `json:"election_name"`
	ElectionDate          string `json:"election_day_text"`
	StateCode             string `json:"state_code,omitempty"`
}

// Elections - ответ electionsRetrieve
type Elections struct {
	Status
	ElectionList []Election `json:"election_list"`
}

// BallotItem - позиция бюллетеня: должность или инициатива
type BallotItem struct {
	WeVoteID              string `json:"we_vote_id"`
	KindOfBallotItem      string `json:"kind_of_ballot_item"`
	BallotItemDisplayName string `json:"ballot_item_display_name"`
	GoogleCivicElectionID string `json:"google_civic_election_id"`
}

// Типы позиций бюллетеня
const (
	KindOffice  = "OFFICE"
	KindMeasure = "MEASURE"
)

// BallotItems - ответ voterBallotItemsRetrieve и ballotItemOptionsRetrieve
type BallotItems struct {
	Status
	VoterDeviceID  string       `json:"voter_device_id,omitempty"`
	BallotItemList []BallotItem `json:"ballot_item_list"`
}

// Candidate - кандидат
type Candidate struct {
	WeVoteID              string `json:"we_vote_id"`
	BallotItemDisplayName string `json:"ballot_item_display_name"`
	Party                 string `json:"party,omitempty"`
	OfficeWeVoteID        string `json:"contest_office_we_vote_id"`
}

// Candidates - ответ candidatesRetrieve
type Candidates struct {
	Status
	OfficeWeVoteID string      `json:"office_we_vote_id"`
	CandidateList  []Candidate `json:"candidate_list"`
}

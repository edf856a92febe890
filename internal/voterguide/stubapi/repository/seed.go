package repository

import (
	"strconv"

	"github.com/iurnickita/voterguide/internal/voterguide/model"
)

// Начальные данные тестового API
var (
	seedOrganizations = []string{
		"wv01org1001",
		"wv01org1002",
		"wv01org1003",
	}

	seedElections = []model.Election{
		{GoogleCivicElectionID: "4162", ElectionName: "California General Election", ElectionDate: "2026-11-03", StateCode: "CA"},
		{GoogleCivicElectionID: "4170", ElectionName: "San Francisco Special Election", ElectionDate: "2027-02-09", StateCode: "CA"},
	}

	seedBallotItems = []model.BallotItem{
		{WeVoteID: "wv01off2001", KindOfBallotItem: model.KindOffice, BallotItemDisplayName: "Governor", GoogleCivicElectionID: "4162"},
		{WeVoteID: "wv01off2002", KindOfBallotItem: model.KindOffice, BallotItemDisplayName: "Secretary of State", GoogleCivicElectionID: "4162"},
		{WeVoteID: "wv01meas3001", KindOfBallotItem: model.KindMeasure, BallotItemDisplayName: "Proposition 1", GoogleCivicElectionID: "4162"},
		{WeVoteID: "wv01meas3002", KindOfBallotItem: model.KindMeasure, BallotItemDisplayName: "Measure A", GoogleCivicElectionID: "4170"},
	}

	seedCandidates = []model.Candidate{
		{WeVoteID: "wv01cand4001", BallotItemDisplayName: "Alex Rivera", Party: "Democratic", OfficeWeVoteID: "wv01off2001"},
		{WeVoteID: "wv01cand4002", BallotItemDisplayName: "Jordan Lee", Party: "Republican", OfficeWeVoteID: "wv01off2001"},
		{WeVoteID: "wv01cand4003", BallotItemDisplayName: "Sam Patel", Party: "Green", OfficeWeVoteID: "wv01off2002"},
	}
)

// voterWeVoteID строит we_vote_id избирателя по его номеру
func voterWeVoteID(id int64) string {
	return "wv01voter" + strconv.FormatInt(id, 10)
}

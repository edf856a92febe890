package client

import (
	"context"

	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
	"github.com/iurnickita/voterguide/internal/voterguide/model"
)

// VoterCount возвращает число избирателей
func (c *Client) VoterCount(ctx context.Context) (int, error) {
	var resp model.VoterCount
	if err := c.Call(ctx, endpoint.VoterCount, nil, &resp); err != nil {
		return 0, err
	}
	return resp.VoterCount, nil
}

// OrganizationCount возвращает число организаций
func (c *Client) OrganizationCount(ctx context.Context) (int, error) {
	var resp model.OrganizationCount
	if err := c.Call(ctx, endpoint.OrganizationCount, nil, &resp); err != nil {
		return 0, err
	}
	return resp.OrganizationCount, nil
}

// VoterRetrieve возвращает избирателя текущего устройства
func (c *Client) VoterRetrieve(ctx context.Context) (model.Voter, error) {
	var resp model.Voter
	err := c.callForDevice(ctx, endpoint.VoterRetrieve, nil, &resp)
	return resp, err
}

// VoterAddressRetrieve возвращает сохраненный адрес избирателя
func (c *Client) VoterAddressRetrieve(ctx context.Context) (string, error) {
	var resp model.VoterAddress
	if err := c.callForDevice(ctx, endpoint.VoterAddressRetrieve, nil, &resp); err != nil {
		return "", err
	}
	return resp.Address, nil
}

// VoterAddressSave сохраняет адрес избирателя
func (c *Client) VoterAddressSave(ctx context.Context, address string) error {
	return c.callForDevice(ctx, endpoint.VoterAddressSave, map[string]string{
		endpoint.ParamAPIKey:  c.apiKey,
		endpoint.ParamAddress: address,
	}, nil)
}

// ElectionsRetrieve возвращает список выборов
func (c *Client) ElectionsRetrieve(ctx context.Context) ([]model.Election, error) {
	var resp model.Elections
	err := c.callForDevice(ctx, endpoint.ElectionsRetrieve, map[string]string{endpoint.ParamAPIKey: c.apiKey}, &resp)
	return resp.ElectionList, err
}

// BallotItemOptionsRetrieve возвращает все позиции бюллетеня, доступные избирателю
func (c *Client) BallotItemOptionsRetrieve(ctx context.Context) ([]model.BallotItem, error) {
	var resp model.BallotItems
	err := c.callForDevice(ctx, endpoint.BallotItemOptionsRetrieve, map[string]string{endpoint.ParamAPIKey: c.apiKey}, &resp)
	return resp.BallotItemList, err
}

// VoterBallotItemsRetrieve возвращает бюллетень избирателя
func (c *Client) VoterBallotItemsRetrieve(ctx context.Context) ([]model.BallotItem, error) {
	var resp model.BallotItems
	err := c.callForDevice(ctx, endpoint.VoterBallotItemsRetrieve, map[string]string{endpoint.ParamAPIKey: c.apiKey}, &resp)
	return resp.BallotItemList, err
}

// CandidatesRetrieve возвращает кандидатов на должность
func (c *Client) CandidatesRetrieve(ctx context.Context, officeWeVoteID string) ([]model.Candidate, error) {
	var resp model.Candidates
	err := c.Call(ctx, endpoint.CandidatesRetrieve, map[string]string{endpoint.ParamOfficeWeVoteID: officeWeVoteID}, &resp)
	return resp.CandidateList, err
}

// callForDevice добавляет к params идентификатор устройства
func (c *Client) callForDevice(ctx context.Context, name endpoint.Name, params map[string]string, out any) error {
	id, err := c.DeviceID(ctx)
	if err != nil {
		return err
	}
	withID := map[string]string{endpoint.ParamVoterDeviceID: id}
	for k, v := range params {
		withID[k] = v
	}
	return c.Call(ctx, name, withID, out)
}

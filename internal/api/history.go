package api

import "github.com/aurelialabs/faro/internal/state"

type appendHistoryInput struct {
	EntityID        string `json:"clientId"`
	Text            string `json:"text"`
	Agent           string `json:"agent"`
	InteractionType string `json:"interactionType"`
}

// FetchLeadHistory returns the lead-context history feed. All three filters
// are optional; empty strings mean unfiltered.
func (c *Client) FetchLeadHistory(entityID, dateFrom, dateTo string) ([]state.HistoryItem, error) {
	path := buildQuery("/api/history", QueryParams{
		"leadId":    entityID,
		"startDate": dateFrom,
		"endDate":   dateTo,
	})
	data, err := c.get(path)
	if err != nil {
		return nil, err
	}
	return decodeList[state.HistoryItem](data)
}

// FetchClientHistory returns the client-context history feed.
func (c *Client) FetchClientHistory() ([]state.HistoryItem, error) {
	data, err := c.get("/api/clients/history")
	if err != nil {
		return nil, err
	}
	return decodeList[state.HistoryItem](data)
}

// AppendLeadHistory records an interaction against a lead and returns the
// stored item.
func (c *Client) AppendLeadHistory(entityID, text, author, kind string) (*state.HistoryItem, error) {
	return c.appendHistory("/api/history", entityID, text, author, kind)
}

// AppendClientHistory records an interaction against a client.
func (c *Client) AppendClientHistory(entityID, text, author, kind string) (*state.HistoryItem, error) {
	return c.appendHistory("/api/clients/history", entityID, text, author, kind)
}

func (c *Client) appendHistory(path, entityID, text, author, kind string) (*state.HistoryItem, error) {
	data, err := c.post(path, appendHistoryInput{
		EntityID:        entityID,
		Text:            text,
		Agent:           author,
		InteractionType: kind,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[state.HistoryItem](data)
}

package api

import "github.com/aurelialabs/faro/internal/state"

// CreateClientInput is the payload for creating a client record.
type CreateClientInput struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	RFC         string `json:"rfc,omitempty"`
	Status      string `json:"status,omitempty"`
}

// FetchClients returns every client in the remote store.
func (c *Client) FetchClients() ([]state.Entity, error) {
	data, err := c.get("/api/clients")
	if err != nil {
		return nil, err
	}
	return decodeList[state.Entity](data)
}

// CreateClient persists a new client record.
func (c *Client) CreateClient(in CreateClientInput) (*state.Entity, error) {
	data, err := c.post("/api/clients", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[state.Entity](data)
}

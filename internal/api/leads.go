package api

import (
	"errors"

	"github.com/aurelialabs/faro/internal/state"
)

// CreateLeadInput is the payload for creating a lead.
type CreateLeadInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
	Status  string `json:"status,omitempty"`
	Class   string `json:"clase,omitempty"`
}

// FetchLeads returns every lead in the remote store.
func (c *Client) FetchLeads() ([]state.Entity, error) {
	data, err := c.get("/api/leads")
	if err != nil {
		return nil, err
	}
	return decodeList[state.Entity](data)
}

// CreateLead persists a new lead and returns the stored record.
func (c *Client) CreateLead(in CreateLeadInput) (*state.Entity, error) {
	data, err := c.post("/api/leads", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[state.Entity](data)
}

// PromoteEntity persists a locally created entity and returns the id the
// remote store assigned to it.
func (c *Client) PromoteEntity(e state.Entity) (string, error) {
	created, err := c.CreateLead(CreateLeadInput{
		Name:    e.Name,
		Phone:   e.Phone,
		Email:   e.Email,
		Address: e.Address,
		Website: e.Website,
		Status:  e.Status,
		Class:   e.Class,
	})
	if err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", errors.New("remote store returned no id")
	}
	return created.ID, nil
}

// UpdateLeadClass persists a lead's classification.
func (c *Client) UpdateLeadClass(id, class string) error {
	_, err := c.patch("/api/pages/"+id, map[string]any{
		"properties": map[string]string{"clase": class},
	})
	return err
}

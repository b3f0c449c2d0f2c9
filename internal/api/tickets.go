package api

import "github.com/aurelialabs/faro/internal/state"

// FetchSupportTickets returns the open support tickets.
func (c *Client) FetchSupportTickets() ([]state.Ticket, error) {
	data, err := c.get("/api/support-tickets")
	if err != nil {
		return nil, err
	}
	return decodeList[state.Ticket](data)
}

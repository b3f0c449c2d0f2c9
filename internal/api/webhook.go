package api

import "github.com/aurelialabs/faro/internal/state"

// notePingBody matches the payload the receiving n8n automation expects.
type notePingBody struct {
	Client    string `json:"cliente"`
	Agent     string `json:"asignar_a"`
	Detail    string `json:"detalle"`
	Contact   string `json:"contacto"`
	Timestamp string `json:"timestamp"`
}

// NotifyNote sends note telemetry to the configured automation webhook, or
// to the server-side proxy when no webhook URL is set. Callers treat this
// as best effort.
func (c *Client) NotifyNote(ping state.NotePing) error {
	target := c.webhookURL
	if target == "" {
		target = "/api/webhook"
	}
	_, err := c.post(target, notePingBody{
		Client:    ping.Client,
		Agent:     ping.Agent,
		Detail:    ping.Detail,
		Contact:   ping.Contact,
		Timestamp: ping.Timestamp,
	})
	return err
}

package schema

import (
	"encoding/json"
	"errors"
)

// Email is the body of a message in the mail queue.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody"`
}

func (m *Email) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *Email) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.To == "" {
		return errors.New("email recipient is empty")
	}
	return nil
}

package api

import (
	"context"
	"fmt"
)

// GetPerson fetches the aggregate person record (biography, oscar wins,
// filmography) by id.
func (c *Client) GetPerson(ctx context.Context, personID int) (*PersonDetails, error) {
	var person PersonDetails
	if err := c.get(ctx, fmt.Sprintf("people/%d", personID), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

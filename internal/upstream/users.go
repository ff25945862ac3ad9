package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
)

// Admin-only user management operations. Authorization is enforced upstream;
// the gateway's admin guard only controls navigation.

// GetAllUsers fetches the user directory.
func (c *Client) GetAllUsers(ctx context.Context) ([]models.ManagedUser, error) {
	var users []models.ManagedUser
	if err := c.get(ctx, "getAllUsers", "/usermanagement", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID fetches one user.
func (c *Client) GetUserByID(ctx context.Context, userID int) (*models.ManagedUser, error) {
	var user models.ManagedUser
	if err := c.get(ctx, "getUserById", fmt.Sprintf("/usermanagement/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's editable details.
func (c *Client) UpdateUser(ctx context.Context, userID int, req models.UpdateUserRequest) (*models.ManagedUser, error) {
	var user models.ManagedUser
	if err := c.send(ctx, "updateUser", http.MethodPut, fmt.Sprintf("/usermanagement/%d", userID), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PromoteUser grants administrator rights.
func (c *Client) PromoteUser(ctx context.Context, userID int) error {
	return c.send(ctx, "promoteToAdmin", http.MethodPut, fmt.Sprintf("/usermanagement/%d/promote", userID), nil, nil, nil)
}

// DemoteUser revokes administrator rights.
func (c *Client) DemoteUser(ctx context.Context, userID int) error {
	return c.send(ctx, "demoteFromAdmin", http.MethodPut, fmt.Sprintf("/usermanagement/%d/demote", userID), nil, nil, nil)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.send(ctx, "deleteUser", http.MethodDelete, fmt.Sprintf("/usermanagement/%d", userID), nil, nil, nil)
}

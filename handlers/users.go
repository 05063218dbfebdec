// ABOUTME: User MCP tool handlers
// ABOUTME: Implements add_user, find_users, and delete_user tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

type UserHandlers struct {
	db *sql.DB
}

func NewUserHandlers(database *sql.DB) *UserHandlers {
	return &UserHandlers{db: database}
}

type AddUserInput struct {
	Name string `json:"name" jsonschema:"Member name (required)"`
}

type UserOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (h *UserHandlers) AddUser(_ context.Context, request *mcp.CallToolRequest, input AddUserInput) (*mcp.CallToolResult, UserOutput, error) {
	if input.Name == "" {
		return nil, UserOutput{}, fmt.Errorf("name is required")
	}

	existing, err := db.FindUserByName(h.db, input.Name)
	if err != nil {
		return nil, UserOutput{}, fmt.Errorf("failed to lookup user: %w", err)
	}
	if existing != nil {
		return nil, userToOutput(existing), nil
	}

	user := &models.User{Name: input.Name}
	if err := db.CreateUser(h.db, user); err != nil {
		return nil, UserOutput{}, fmt.Errorf("failed to create user: %w", err)
	}

	return nil, userToOutput(user), nil
}

type FindUsersInput struct {
	Name string `json:"name,omitempty" jsonschema:"Exact name to look up (case-insensitive); empty lists everyone"`
}

type FindUsersOutput struct {
	Users []UserOutput `json:"users"`
}

func (h *UserHandlers) FindUsers(_ context.Context, request *mcp.CallToolRequest, input FindUsersInput) (*mcp.CallToolResult, FindUsersOutput, error) {
	if input.Name != "" {
		user, err := db.FindUserByName(h.db, input.Name)
		if err != nil {
			return nil, FindUsersOutput{}, fmt.Errorf("failed to find user: %w", err)
		}
		if user == nil {
			return nil, FindUsersOutput{Users: []UserOutput{}}, nil
		}
		return nil, FindUsersOutput{Users: []UserOutput{userToOutput(user)}}, nil
	}

	users, err := db.AllUsers(h.db)
	if err != nil {
		return nil, FindUsersOutput{}, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]UserOutput, len(users))
	for i, user := range users {
		result[i] = userToOutput(&user)
	}

	return nil, FindUsersOutput{Users: result}, nil
}

type DeleteUserInput struct {
	ID string `json:"id" jsonschema:"User ID (required)"`
}

type DeleteUserOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *UserHandlers) DeleteUser(_ context.Context, request *mcp.CallToolRequest, input DeleteUserInput) (*mcp.CallToolResult, DeleteUserOutput, error) {
	if input.ID == "" {
		return nil, DeleteUserOutput{}, fmt.Errorf("id is required")
	}

	userID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteUserOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.DeleteUser(h.db, userID); err != nil {
		return nil, DeleteUserOutput{}, fmt.Errorf("failed to delete user: %w", err)
	}

	return nil, DeleteUserOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted user: %s (their connections were kept)", userID),
	}, nil
}

func userToOutput(user *models.User) UserOutput {
	return UserOutput{
		ID:        user.ID.String(),
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

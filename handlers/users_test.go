// ABOUTME: Tests for user MCP tool handlers
// ABOUTME: Validates member creation, lookup, and deletion
package handlers

import (
	"context"
	"testing"
)

func TestAddUserHandler(t *testing.T) {
	database := setupTestDB(t)

	handler := NewUserHandlers(database)

	_, output, err := handler.AddUser(context.Background(), nil, AddUserInput{Name: "Sam Carter"})
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if output.ID == "" {
		t.Error("ID was not set")
	}

	// Adding the same name again returns the existing member.
	_, output2, err := handler.AddUser(context.Background(), nil, AddUserInput{Name: "sam carter"})
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if output2.ID != output.ID {
		t.Errorf("Expected existing user %s, got %s", output.ID, output2.ID)
	}

	_, _, err = handler.AddUser(context.Background(), nil, AddUserInput{})
	if err == nil {
		t.Error("Expected error for missing name")
	}
}

func TestFindUsersHandler(t *testing.T) {
	database := setupTestDB(t)

	handler := NewUserHandlers(database)

	for _, name := range []string{"Sam Carter", "Anna Lee"} {
		if _, _, err := handler.AddUser(context.Background(), nil, AddUserInput{Name: name}); err != nil {
			t.Fatalf("AddUser failed: %v", err)
		}
	}

	_, output, err := handler.FindUsers(context.Background(), nil, FindUsersInput{})
	if err != nil {
		t.Fatalf("FindUsers failed: %v", err)
	}
	if len(output.Users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(output.Users))
	}

	_, output, err = handler.FindUsers(context.Background(), nil, FindUsersInput{Name: "anna lee"})
	if err != nil {
		t.Fatalf("FindUsers failed: %v", err)
	}
	if len(output.Users) != 1 || output.Users[0].Name != "Anna Lee" {
		t.Errorf("Expected Anna Lee, got %v", output.Users)
	}

	_, output, err = handler.FindUsers(context.Background(), nil, FindUsersInput{Name: "nobody"})
	if err != nil {
		t.Fatalf("FindUsers failed: %v", err)
	}
	if len(output.Users) != 0 {
		t.Errorf("Expected no users, got %v", output.Users)
	}
}

func TestDeleteUserHandler(t *testing.T) {
	database := setupTestDB(t)

	handler := NewUserHandlers(database)

	_, created, err := handler.AddUser(context.Background(), nil, AddUserInput{Name: "Sam Carter"})
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	_, output, err := handler.DeleteUser(context.Background(), nil, DeleteUserInput{ID: created.ID})
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if !output.Success {
		t.Error("Expected success")
	}

	_, found, err := handler.FindUsers(context.Background(), nil, FindUsersInput{Name: "Sam Carter"})
	if err != nil {
		t.Fatalf("FindUsers failed: %v", err)
	}
	if len(found.Users) != 0 {
		t.Error("Expected user to be deleted")
	}

	_, _, err = handler.DeleteUser(context.Background(), nil, DeleteUserInput{ID: "not-a-uuid"})
	if err == nil {
		t.Error("Expected error for invalid id")
	}
}

package rest

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCreateBoardHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name           string
		payload        interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:           "Valid request",
			payload:        map[string]interface{}{"board_id": 7},
			expectedStatus: fiber.StatusCreated,
			checkResponse: func(t *testing.T, body []byte) {
				var response BoardDetail
				if err := json.Unmarshal(body, &response); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if response.BoardID != 7 {
					t.Errorf("Expected board_id 7, got %d", response.BoardID)
				}
			},
		},
		{
			name:           "Board zero is a valid id",
			payload:        map[string]interface{}{"board_id": 0},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "Duplicate board_id",
			payload:        map[string]interface{}{"board_id": 7},
			expectedStatus: fiber.StatusConflict,
		},
		{
			name:           "Missing board_id",
			payload:        map[string]interface{}{},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "Negative board_id",
			payload:        map[string]interface{}{"board_id": -1},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			payload:        "invalid json",
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, app, "POST", "/boards", tt.payload)

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response: %s", tt.expectedStatus, resp.StatusCode, string(body))
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, body)
			}
		})
	}
}

func TestListAndGetBoardHandlers(t *testing.T) {
	app, _ := setupTestApp(t)

	body := mustStatus(t, app, "GET", "/boards", nil, fiber.StatusOK)
	var empty BoardsListResponse
	if err := json.Unmarshal(body, &empty); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if empty.Data == nil || len(empty.Data) != 0 {
		t.Errorf("Expected an empty data array, got %s", string(body))
	}

	mustStatus(t, app, "POST", "/boards", map[string]interface{}{"board_id": 12}, fiber.StatusCreated)
	mustStatus(t, app, "POST", "/boards", map[string]interface{}{"board_id": 4}, fiber.StatusCreated)

	body = mustStatus(t, app, "GET", "/boards", nil, fiber.StatusOK)
	var list BoardsListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(list.Data) != 2 || list.Data[0].BoardID != 4 || list.Data[1].BoardID != 12 {
		t.Errorf("Expected boards [4 12], got %s", string(body))
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"Existing board", "/boards/12", fiber.StatusOK},
		{"Unknown board", "/boards/99", fiber.StatusNotFound},
		{"Non-numeric id", "/boards/abc", fiber.StatusBadRequest},
		{"Negative id", "/boards/-3", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, app, "GET", tt.path, nil)
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response: %s", tt.expectedStatus, resp.StatusCode, string(body))
			}
		})
	}
}

func TestDeleteBoardReleasesPlant(t *testing.T) {
	app, _ := setupTestApp(t)

	mustStatus(t, app, "POST", "/boards", map[string]interface{}{"board_id": 7}, fiber.StatusCreated)
	mustStatus(t, app, "POST", "/plants", map[string]interface{}{"plant_id": 3, "board": 7, "watering_time": 1000}, fiber.StatusCreated)
	mustStatus(t, app, "PUT", "/boards/7/sensors/light", map[string]interface{}{"value": 800}, fiber.StatusOK)

	mustStatus(t, app, "DELETE", "/boards/7", nil, fiber.StatusOK)
	mustStatus(t, app, "DELETE", "/boards/7", nil, fiber.StatusNotFound)

	body := mustStatus(t, app, "GET", "/plants/3", nil, fiber.StatusOK)
	var plant PlantDetail
	if err := json.Unmarshal(body, &plant); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if plant.Board != nil {
		t.Errorf("Expected plant to be unbound, got board %d", *plant.Board)
	}
	if plant.Light != nil {
		t.Errorf("Expected light reading to be cleared, got %d", *plant.Light)
	}
}

func TestHealthHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	body := mustStatus(t, app, "GET", "/health", nil, fiber.StatusOK)

	var response map[string]string
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response["status"])
	}

	mustStatus(t, app, "GET", "/", nil, fiber.StatusOK)
	mustStatus(t, app, "GET", "/api/openapi.yaml", nil, fiber.StatusOK)
}

package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"puantaj-backend/internal/models"
)

func TestCreateOutcome(t *testing.T) {
	winner := models.DayOverride{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		DayDate:    "2024-03-04",
		Status:     "LEAVE",
	}
	insertErr := errors.New("Error 1062: Duplicate entry")

	tests := []struct {
		name       string
		createErr  error
		existing   func() (models.DayOverride, bool)
		wantStatus int
		wantRow    bool
	}{
		{
			name:       "insert succeeded",
			createErr:  nil,
			existing:   func() (models.DayOverride, bool) { t.Fatal("lookup must not run on success"); return models.DayOverride{}, false },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "lost race to a concurrent writer",
			createErr:  insertErr,
			existing:   func() (models.DayOverride, bool) { return winner, true },
			wantStatus: http.StatusConflict,
			wantRow:    true,
		},
		{
			name:       "insert failed with no competing row",
			createErr:  insertErr,
			existing:   func() (models.DayOverride, bool) { return models.DayOverride{}, false },
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, status := createOutcome(tt.createErr, tt.existing)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantRow && current.ID != winner.ID {
				t.Errorf("conflict must return the winning row, got %v", current.ID)
			}
			if !tt.wantRow && current.ID != uuid.Nil {
				t.Errorf("unexpected row returned: %v", current.ID)
			}
		})
	}
}

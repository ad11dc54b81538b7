package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/novikovpa/user-accounts/internal/middlewares"
	"github.com/novikovpa/user-accounts/internal/models"
	"github.com/novikovpa/user-accounts/internal/services"
)

func TestMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := primitive.NewObjectID()

	tests := []struct {
		name         string
		withUserID   bool
		mockSetup    func(m *MockUserGetter)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:       "success",
			withUserID: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().
					GetUser(gomock.Any(), userID.Hex()).
					Return(&models.UserDB{
						ID:       userID,
						Username: "alice",
						Email:    "a@x.com",
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{
				"id":       userID.Hex(),
				"username": "alice",
				"email":    "a@x.com",
			},
		},
		{
			name:         "no user id in context",
			withUserID:   false,
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]string{"message": "Unauthorized"},
		},
		{
			name:       "user not found",
			withUserID: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().
					GetUser(gomock.Any(), userID.Hex()).
					Return(nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: map[string]string{"message": "User not found"},
		},
		{
			name:       "internal server error",
			withUserID: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().
					GetUser(gomock.Any(), userID.Hex()).
					Return(nil, errors.New("store unavailable"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "store unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewMeHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.withUserID {
				req = req.WithContext(middlewares.WithUserID(req.Context(), userID.Hex()))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

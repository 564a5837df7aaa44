package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/services"
)

const testActivityID = "0190c2a5-2222-7b1a-9c4e-1d2f3a4b5c6d"

type mockActivityService struct {
	createFn   func(userID string, input services.CreateActivityInput) (*models.Activity, error)
	listFn     func(userID string) ([]models.Activity, error)
	getByIDFn  func(userID, activityID string) (*models.Activity, error)
	updateFn   func(userID, activityID string, input services.UpdateActivityInput) (*models.Activity, error)
	deleteFn   func(userID, activityID string) error
	completeFn func(userID, activityID, note string) (*models.Activity, error)
}

func (m *mockActivityService) CreateActivity(userID string, input services.CreateActivityInput) (*models.Activity, error) {
	if m.createFn != nil {
		return m.createFn(userID, input)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) GetUserActivities(userID string) ([]models.Activity, error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return nil, nil
}

func (m *mockActivityService) GetActivityByID(userID, activityID string) (*models.Activity, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(userID, activityID)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) UpdateActivity(userID, activityID string, input services.UpdateActivityInput) (*models.Activity, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, activityID, input)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) DeleteActivity(userID, activityID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, activityID)
	}
	return nil
}

func (m *mockActivityService) CompleteActivity(userID, activityID, note string) (*models.Activity, error) {
	if m.completeFn != nil {
		return m.completeFn(userID, activityID, note)
	}
	return &models.Activity{}, nil
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

func setupActivityRouter(handler *ActivityHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/activities", injectUserID(testUserID))
	g.POST("", handler.CreateActivity)
	g.GET("", handler.GetUserActivities)
	g.GET("/:id", handler.GetActivityByID)
	g.PUT("/:id", handler.UpdateActivity)
	g.DELETE("/:id", handler.DeleteActivity)
	g.POST("/:id/complete", handler.CompleteActivity)
	return r
}

func TestActivityHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.CreateActivityInput
		svc := &mockActivityService{
			createFn: func(_ string, input services.CreateActivityInput) (*models.Activity, error) {
				got = input
				return &models.Activity{Base: models.Base{ID: testActivityID}, Name: input.Name}, nil
			},
		}
		r := setupActivityRouter(NewActivityHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/activities", `{"name":"Meditate","frequency":"daily","icon":"lotus"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name != "Meditate" || got.Frequency != models.ActivityFrequencyDaily || got.Icon != "lotus" {
			t.Errorf("unexpected input: %+v", got)
		}
	})

	t.Run("returns 400 on bad frequency", func(t *testing.T) {
		r := setupActivityRouter(NewActivityHandler(&mockActivityService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/activities", `{"name":"Meditate","frequency":"hourly"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestActivityHandler_List(t *testing.T) {
	r := setupActivityRouter(NewActivityHandler(&mockActivityService{}, &mockAuditService{}))

	rec := doRequest(r, "GET", "/activities", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := parseJSON(t, rec)["activities"].([]interface{}); !ok {
		t.Errorf("expected activities array, got %s", rec.Body.String())
	}
}

func TestActivityHandler_Update(t *testing.T) {
	var got services.UpdateActivityInput
	svc := &mockActivityService{
		updateFn: func(_, id string, input services.UpdateActivityInput) (*models.Activity, error) {
			got = input
			return &models.Activity{Base: models.Base{ID: id}}, nil
		},
	}
	r := setupActivityRouter(NewActivityHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "PUT", "/activities/"+testActivityID, `{"notes":"after lunch"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Notes == nil || *got.Notes != "after lunch" || got.Name != nil {
		t.Errorf("unexpected input: %+v", got)
	}
}

func TestActivityHandler_Delete(t *testing.T) {
	svc := &mockActivityService{
		deleteFn: func(_, _ string) error { return apperrors.ErrActivityNotFound },
	}
	r := setupActivityRouter(NewActivityHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/activities/"+testActivityID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "ACTIVITY_NOT_FOUND")
}

func TestActivityHandler_Complete(t *testing.T) {
	t.Run("works without a body", func(t *testing.T) {
		called := false
		svc := &mockActivityService{
			completeFn: func(_, id, note string) (*models.Activity, error) {
				called = true
				if note != "" {
					t.Errorf("expected empty note, got %q", note)
				}
				return &models.Activity{Base: models.Base{ID: id}, Streak: 3}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupActivityRouter(NewActivityHandler(svc, audit))

		rec := doRequest(r, "POST", "/activities/"+testActivityID+"/complete", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called {
			t.Fatal("expected service call")
		}
		activity := parseJSON(t, rec)["activity"].(map[string]interface{})
		if activity["streak"] != float64(3) {
			t.Errorf("expected streak 3, got %v", activity["streak"])
		}
		if a := audit.actions(); len(a) != 1 || a[0] != "COMPLETE_ACTIVITY" {
			t.Errorf("expected COMPLETE_ACTIVITY audit, got %v", a)
		}
	})

	t.Run("passes the note", func(t *testing.T) {
		var gotNote string
		svc := &mockActivityService{
			completeFn: func(_, _, note string) (*models.Activity, error) {
				gotNote = note
				return &models.Activity{}, nil
			},
		}
		r := setupActivityRouter(NewActivityHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/activities/"+testActivityID+"/complete", `{"note":"20 minutes"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotNote != "20 minutes" {
			t.Errorf("expected note, got %q", gotNote)
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupActivityRouter(NewActivityHandler(&mockActivityService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/activities/123/complete", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

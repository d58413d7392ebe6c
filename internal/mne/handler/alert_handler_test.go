package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/middleware"
	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
	"github.com/tebita/resourcehub/internal/mne/sse"
	"github.com/tebita/resourcehub/internal/mne/testutil"
)

func setupAlertTest(t *testing.T) (*testutil.TestEnv, *sse.Hub) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	hub := sse.NewHub()
	svc := service.NewMonitorService(repos.Request, repos.Alert, hub, &config.Config{}, zap.NewNop())
	handler := NewAlertHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/sla-alerts", handler.List)
	api.POST("/sla-alerts/:id/acknowledge", handler.Acknowledge)
	api.POST("/sla-alerts/sweep", middleware.RequireRole("ADMIN"), handler.Sweep)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, hub
}

// 重复巡检同一超时请求：告警只落一条，SSE只推一次。
func TestSweepIdempotent(t *testing.T) {
	env, hub := setupAlertTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	client := &sse.Client{ID: "test-client", UserID: "test-user-001", Events: make(chan sse.Event, 16)}
	hub.Register(client)
	defer hub.Unregister(client.ID)

	// 完成截止已过24小时、已响应的处理中请求
	created := time.Now().Add(-48 * time.Hour)
	respHours, compHours := 2, 24
	respDeadline := created.Add(2 * time.Hour)
	respActual := created.Add(1 * time.Hour)
	compDeadline := created.Add(24 * time.Hour)
	req := testutil.SeedTestRequest(t, env.DB, &entity.Request{
		ResourceType:           entity.ResourceICT,
		Priority:               entity.PriorityHigh,
		Status:                 entity.StatusInProgress,
		CreatedAt:              created,
		SLAResponseTimeHours:   &respHours,
		SLACompletionTimeHours: &compHours,
		SLAResponseDeadline:    &respDeadline,
		ActualResponseTime:     &respActual,
		SLACompletionDeadline:  &compDeadline,
	})

	for i := 0; i < 2; i++ {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-alerts/sweep", nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("Sweep %d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-alerts", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 alert after two sweeps, got %d", len(items))
	}
	alert := items[0].(map[string]interface{})
	if alert["alert_type"] != string(entity.AlertOverdue) {
		t.Errorf("Expected alert type OVERDUE, got %v", alert["alert_type"])
	}
	if alert["request_id"] != req.ID {
		t.Errorf("Expected alert for request %s, got %v", req.ID, alert["request_id"])
	}

	if n := len(client.Events); n != 1 {
		t.Fatalf("Expected 1 SSE event, got %d", n)
	}
	ev := <-client.Events
	if ev.EventType != "sla_alert" {
		t.Errorf("Expected sla_alert event, got %s", ev.EventType)
	}

	// 告警确认一次后即不可重复确认
	id := alert["id"].(string)
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/sla-alerts/"+id+"/acknowledge", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on acknowledge, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/sla-alerts/"+id+"/acknowledge", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second acknowledge, got %d", w.Code)
	}
}

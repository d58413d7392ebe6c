package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
	"github.com/tebita/resourcehub/internal/mne/testutil"
)

func setupReportTest(t *testing.T) (*testutil.TestEnv, *ReportHandler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	reportSvc := service.NewReportService(repos.Request, repos.Scorecard, repos.Org, repos.ResourceDetail, nil, &config.Config{})
	exportSvc := service.NewExportService(repos.Request)
	handler := NewReportHandler(reportSvc, exportSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/reports/compliance", handler.Compliance)
	api.POST("/reports/scorecard", handler.Scorecard)
	api.GET("/reports/scorecards", handler.ListScorecards)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, handler
}

// 全部完成但全部晚于截止时间：完成率虽是100%，效率维度看的是按时完成。
func TestScorecardEfficiencyCountsOnTimeCompletion(t *testing.T) {
	env, _ := setupReportTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	created := time.Now().Add(-72 * time.Hour)
	respHours, compHours := 2, 24
	for i := 0; i < 2; i++ {
		respDeadline := created.Add(2 * time.Hour)
		respActual := created.Add(1 * time.Hour) // 响应按时
		compDeadline := created.Add(24 * time.Hour)
		compActual := created.Add(40 * time.Hour) // 完成超时
		testutil.SeedTestRequest(t, env.DB, &entity.Request{
			ResourceType:           entity.ResourceFinance,
			Priority:               entity.PriorityHigh,
			Status:                 entity.StatusCompleted,
			CreatedAt:              created,
			SLAResponseTimeHours:   &respHours,
			SLACompletionTimeHours: &compHours,
			SLAResponseDeadline:    &respDeadline,
			ActualResponseTime:     &respActual,
			SLACompletionDeadline:  &compDeadline,
			ActualCompletionTime:   &compActual,
		})
	}

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/reports/scorecard", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	breakdown := data["breakdown"].(map[string]interface{})

	// 响应100%按时、完成0%按时：0.4*100 + 0.4*0 + 16 = 56
	if breakdown["efficiency"] != float64(56) {
		t.Errorf("Expected efficiency 56, got %v", breakdown["efficiency"])
	}
	// 合规维度：合规率0、已完成请求均未评分，仅剩基线45
	if breakdown["compliance"] != float64(45) {
		t.Errorf("Expected compliance 45, got %v", breakdown["compliance"])
	}
	// 0.25*56 + 0.30*45 + 0.20*87.5 + 0.25*100 = 70
	if breakdown["total"] != float64(70) {
		t.Errorf("Expected total 70, got %v", breakdown["total"])
	}
	if breakdown["rating"] != string(entity.RatingGood) {
		t.Errorf("Expected rating GOOD, got %v", breakdown["rating"])
	}

	sc := data["scorecard"].(map[string]interface{})
	if sc["service_efficiency_score"] != float64(56) {
		t.Errorf("Expected persisted efficiency 56, got %v", sc["service_efficiency_score"])
	}

	// 快照已落库
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/reports/scorecards", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	items := resp2["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 scorecard, got %d", len(items))
	}
}

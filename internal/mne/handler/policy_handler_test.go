package handler

import (
	"net/http"
	"testing"

	"github.com/tebita/resourcehub/internal/middleware"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
	"github.com/tebita/resourcehub/internal/mne/testutil"
)

func setupPolicyTest(t *testing.T) (*testutil.TestEnv, *PolicyHandler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	handler := NewPolicyHandler(service.NewPolicyService(repos.Policy))

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/sla-policies", handler.List)
	api.GET("/sla-policies/:id", handler.Get)
	api.POST("/sla-policies", middleware.RequireRole("ADMIN"), handler.Create)
	api.PUT("/sla-policies/:id", middleware.RequireRole("ADMIN"), handler.Update)
	api.DELETE("/sla-policies/:id", middleware.RequireRole("ADMIN"), handler.Delete)
	api.POST("/sla-policies/seed-defaults", middleware.RequireRole("ADMIN"), handler.SeedDefaults)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, handler
}

func TestPolicyCreateAndGet(t *testing.T) {
	env, _ := setupPolicyTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies",
		map[string]interface{}{
			"name":                  "后勤紧急补给",
			"resource_type":         "LOGISTICS",
			"priority":              "HIGH",
			"response_time_hours":   0.5,
			"completion_time_hours": 4,
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["is_active"] != true {
		t.Errorf("Expected new policy active, got %v", data["is_active"])
	}
	id := data["id"].(string)

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-policies/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["response_time_hours"] != float64(0.5) {
		t.Errorf("Expected response budget 0.5h, got %v", data2["response_time_hours"])
	}
}

func TestPolicyDuplicateScopeRejected(t *testing.T) {
	env, _ := setupPolicyTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	body := map[string]interface{}{
		"resource_type":         "ICT",
		"priority":              "MEDIUM",
		"response_time_hours":   4,
		"completion_time_hours": 48,
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// 同作用域（全局 ICT/MEDIUM）二次创建冲突
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies", body, token)
	if w2.Code != http.StatusConflict {
		t.Errorf("Expected 409 on duplicate scope, got %d: %s", w2.Code, w2.Body.String())
	}

	// 更细作用域不算重复
	div := testutil.SeedTestDivision(t, env.DB, "div-001", "东部战区")
	body["division_id"] = div.ID
	w3 := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies", body, token)
	if w3.Code != http.StatusCreated {
		t.Errorf("Expected 201 for division-scoped policy, got %d: %s", w3.Code, w3.Body.String())
	}
}

func TestPolicyValidation(t *testing.T) {
	env, _ := setupPolicyTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	// 完成时限不能小于响应时限
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies",
		map[string]interface{}{
			"resource_type":         "HR",
			"priority":              "LOW",
			"response_time_hours":   48,
			"completion_time_hours": 24,
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for completion < response, got %d", w.Code)
	}

	// 科室级策略必须带战区
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies",
		map[string]interface{}{
			"resource_type":         "HR",
			"priority":              "LOW",
			"response_time_hours":   4,
			"completion_time_hours": 24,
			"department_id":         "dept-001",
		}, token)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for department without division, got %d", w2.Code)
	}
}

func TestPolicyWriteRequiresAdmin(t *testing.T) {
	env, _ := setupPolicyTest(t)
	viewerToken := testutil.GenerateTestToken("test-user-002", "Viewer", "USER")
	testutil.SeedTestUser(t, env.DB, "test-user-002", "Viewer")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies",
		map[string]interface{}{
			"resource_type":         "ICT",
			"priority":              "HIGH",
			"response_time_hours":   1,
			"completion_time_hours": 24,
		}, viewerToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin write, got %d", w.Code)
	}

	// 读接口不受角色限制
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-policies", nil, viewerToken)
	if w2.Code != http.StatusOK {
		t.Errorf("Expected 200 for non-admin read, got %d", w2.Code)
	}
}

func TestPolicySeedDefaults(t *testing.T) {
	env, _ := setupPolicyTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies/seed-defaults", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// 7种资源×3档优先级
	if created := testutil.ParseResponse(w)["data"].(map[string]interface{})["created"]; created != float64(21) {
		t.Errorf("Expected 21 seeded policies, got %v", created)
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-policies?active=true", nil, token)
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	items := data2["items"].([]interface{})
	if len(items) != 21 {
		t.Errorf("Expected 21 active policies, got %d", len(items))
	}

	// 幂等：二次播种不追加
	testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies/seed-defaults", nil, token)
	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-policies", nil, token)
	data3 := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if len(data3["items"].([]interface{})) != 21 {
		t.Errorf("Expected seeding to be idempotent, got %d policies", len(data3["items"].([]interface{})))
	}
}

func TestPolicyUpdateAndDelete(t *testing.T) {
	env, _ := setupPolicyTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Admin")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sla-policies",
		map[string]interface{}{
			"resource_type":         "FLEET",
			"priority":              "HIGH",
			"response_time_hours":   0.5,
			"completion_time_hours": 24,
		}, token)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/sla-policies/"+id,
		map[string]interface{}{
			"resource_type":         "FLEET",
			"priority":              "HIGH",
			"response_time_hours":   1,
			"completion_time_hours": 24,
			"is_active":             false,
		}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200 on update, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["response_time_hours"] != float64(1) || data2["is_active"] != false {
		t.Errorf("Update not applied: %v", data2)
	}

	w3 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/sla-policies/"+id, nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200 on delete, got %d: %s", w3.Code, w3.Body.String())
	}
	w4 := testutil.DoRequest(env.Router, "GET", "/api/v1/sla-policies/"+id, nil, token)
	if w4.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w4.Code)
	}
}

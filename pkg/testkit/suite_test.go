package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestSuiteRunner(t *testing.T) {
	// 1. Setup sample master config
	masterConfig := []ConfigEntry{
		{
			ServiceName:       "ProductLookup",
			FilePath:          "catalog_api",
			ScenariosFileName: "lookup_scenario.json",
			ServiceURL:        "/api/products/lookup",
			HTTPMethodType:    "POST",
			WorkflowService:   "HandleLookup",
		},
	}

	scenarios := []Scenario{
		{
			Name:             "LookupReturnsProduct",
			Description:      "Answers a catalog lookup with the product snapshot",
			RequestMethod:    "POST",
			RequestURL:       "/api/products/lookup",
			ExpectedCode:     200,
			RequestFileName:  "req.json",
			ResponseFileName: "res.json",
		},
	}

	// 2. Write temp files
	dir := t.TempDir()
	masterPath := filepath.Join(dir, "test_scenarios.json")

	masterData, _ := json.Marshal(masterConfig)
	_ = os.WriteFile(masterPath, masterData, 0644)

	apiDir := filepath.Join(dir, "catalog_api")
	_ = os.MkdirAll(apiDir, 0755)

	scenarioData, _ := json.Marshal(scenarios)
	_ = os.WriteFile(filepath.Join(apiDir, "lookup_scenario.json"), scenarioData, 0644)

	reqData := []byte(`{"productId": "prd-luar-shirt"}`)
	resData := []byte(`{"productId": "prd-luar-shirt", "title": "Camisa de seda Luar"}`)
	_ = os.WriteFile(filepath.Join(apiDir, "req.json"), reqData, 0644)
	_ = os.WriteFile(filepath.Join(apiDir, "res.json"), resData, 0644)

	// 3. Create mock handler
	handlers := map[string]http.HandlerFunc{
		"HandleLookup": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"productId": "prd-luar-shirt", "title": "Camisa de seda Luar"}`))
		},
	}

	// 4. Run suite
	// Note: We'd normally use t directly, but since we are testing the testkit itself,
	// errors inside RunSuite trigger t.Fatal. A clean run without panics/fatals is a success.
	RunSuite(t, masterPath, handlers)
}

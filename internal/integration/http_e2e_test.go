//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "trip_budget/internal/adapters/http_server"
	redisad "trip_budget/internal/adapters/redis"
	"trip_budget/internal/app"
	"trip_budget/internal/budget"
	"trip_budget/internal/domain"
	mysqlrepo "trip_budget/internal/storage/mysql"
)

// ---------- helpers ----------
func pfloat(f float64) *float64 { return &f }

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

// ---------- the test ----------
func TestHTTP_EndToEnd_PredictAndReload(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tripbudget",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/tripbudget?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed
	parisID, err := repo.UpsertDestination(ctx, domain.DestinationRecord{
		Name: "Paris", Country: "France", Currency: "EUR", Region: "Europe",
		CostIndex: pfloat(110), Popularity: pfloat(85), AverageDailyCost: pfloat(150),
	})
	if err != nil {
		t.Fatalf("UpsertDestination: %v", err)
	}
	if err := repo.ReplaceActivities(ctx, parisID, []domain.Activity{
		{Name: "Louvre", Cost: 40, Rating: 4.5},
		{Name: "Seine cruise", Cost: 60, Rating: 4.2},
	}); err != nil {
		t.Fatalf("ReplaceActivities: %v", err)
	}

	// Wire the real stack against MySQL and a fake Redis
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	catalog := app.NewCatalogService(repo, budget.Options{})
	models, err := catalog.Initialize(ctx)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	srv := server.New(server.Options{Timeout: 5 * time.Second})
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(models, cache, time.Minute), Catalog: catalog})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Predict
	res, err := http.Post(ts.URL+"/v1/predictions", "application/json",
		strings.NewReader(`{"destinationCity":"Paris","startDate":"2024-07-01","endDate":"2024-07-08"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("predict status %d", res.StatusCode)
	}
	var pr app.PredictionResult
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pr.ModelVersion != 1 || pr.Prediction.TripDuration != 8 || pr.Prediction.TotalPredicted <= 0 {
		t.Fatalf("unexpected prediction: %+v", pr)
	}
	live, _ := models.Current()
	if !mr.Exists("prediction:" + live.Fingerprint() + ":paris:2024-07-01:8:f") {
		t.Fatalf("prediction was not cached; keys=%v", mr.Keys())
	}

	// Unknown before reload
	if code := getJSON(t, ts.URL+"/v1/destinations/Oslo/stats", nil); code != http.StatusNotFound {
		t.Fatalf("oslo before reload: status %d", code)
	}

	// New destination lands in MySQL, reload publishes v2
	if _, err := repo.UpsertDestination(ctx, domain.DestinationRecord{
		Name: "Oslo", Country: "Norway", Currency: "NOK", AverageDailyCost: pfloat(210),
	}); err != nil {
		t.Fatalf("UpsertDestination oslo: %v", err)
	}
	rres, err := http.Post(ts.URL+"/v1/admin/reload", "application/json", nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	rres.Body.Close()
	if rres.StatusCode != http.StatusOK {
		t.Fatalf("reload status %d", rres.StatusCode)
	}

	var cs domain.CityStats
	if code := getJSON(t, ts.URL+"/v1/destinations/oslo/stats", &cs); code != http.StatusOK {
		t.Fatalf("oslo after reload: status %d", code)
	}
	if cs.Name != "Oslo" || cs.AverageDailyCost != 210 {
		t.Fatalf("unexpected oslo stats: %+v", cs)
	}

	var m domain.ModelSummary
	if code := getJSON(t, ts.URL+"/v1/model", &m); code != http.StatusOK || m.Version != 2 || m.Destinations != 2 {
		t.Fatalf("unexpected model summary: code=%d %+v", code, m)
	}
}

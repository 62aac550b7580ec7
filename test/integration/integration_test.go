//go:build integration

// Package integration runs the SpendSync feature files against a fully wired
// application backed by in-memory SQLite, miniredis and fake Discord, rate
// and mail providers.
//
//	go test -tags integration ./test/integration -godog.tags=@alerts
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/spendsync/backend/test/integration/steps"
)

var opts = godog.Options{
	Format: "pretty",
	Paths:  []string{"features"},
	Output: colors.Colored(os.Stdout),
	Strict: true,
}

func init() {
	godog.BindCommandLineFlags("godog.", &opts)
}

func TestFeatures(t *testing.T) {
	o := opts
	o.TestingT = t
	// Scenarios share one in-memory store and the rate API stub.
	o.Concurrency = 1

	status := godog.TestSuite{
		Name:                 "spendsync",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &o,
	}.Run()
	if status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}

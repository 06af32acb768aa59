//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedNowcastPath holds the path to a shared nowcast binary built once for all tests.
	sharedNowcastPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getNowcastBinary returns the path to the nowcast binary, building it once if needed.
func getNowcastBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "nowcast-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		nowcastPath := filepath.Join(tempDir, "nowcast")
		buildCmd := exec.Command("go", "build", "-o", nowcastPath, "./cmd/nowcast")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build nowcast: %v", err))
		}

		sharedNowcastPath = nowcastPath
	})

	return sharedNowcastPath
}

// runNowcastCommand runs the shared binary with the given arguments from
// the project root.
func runNowcastCommand(t *testing.T, args ...string) error {
	t.Helper()
	nowcastPath := getNowcastBinary()
	cmd := exec.Command(nowcastPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

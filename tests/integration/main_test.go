package integration

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestMain terminates the shared container after the package's tests
func TestMain(m *testing.M) {
	code := m.Run()

	sharedContainerMu.Lock()
	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_ = sharedContainer.Terminate(ctx)
		cancel()
	}
	sharedContainerMu.Unlock()
	os.Exit(code)
}

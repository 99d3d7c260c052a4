package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNop(), "notify", func() {
		defer close(done)
		panic("smtp exploded")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestSafeGo_RunsFunction(t *testing.T) {
	ran := make(chan bool, 1)
	SafeGo(logger.NewNop(), "work", func() { ran <- true })
	assert.True(t, <-ran)
}

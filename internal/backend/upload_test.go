package backend

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) {
	return "", errors.New("session expired")
}

func TestUploadReleasesPipeWriterOnAuthFailure(t *testing.T) {
	client := NewClient("http://backend.invalid", failingTokens{})

	baseline := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		_, err := client.CallIQ().Upload(context.Background(), "Q3 demo", "demo.mp3",
			strings.NewReader("audio-bytes"), 11, nil)
		require.Error(t, err)
	}

	// The multipart writer goroutines park on the pipe; closing it on the
	// failed-auth return must let every one of them exit.
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline+2
	}, time.Second, 10*time.Millisecond,
		"writer goroutines still parked after failed uploads")
}

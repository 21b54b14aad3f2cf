package logger

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrReturnsWrappedError(t *testing.T) {
	log := New("test")

	base := errors.New("connection refused")
	err := log.Err("failed to connect", base)

	assert.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestErrorWithTypeWrapsSentinel(t *testing.T) {
	log := New("test")

	sentinel := errors.New("validation error")
	err := log.ErrorWithType(sentinel, "mealDate is required")

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "mealDate is required")
}

func TestErrorReturnsMessage(t *testing.T) {
	log := New("test")

	err := log.Error("something went wrong", "key", "value")
	assert.EqualError(t, err, "something went wrong")
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", TraceIDFromContext(ctx))

	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestIsTestModeMatchesAnyTestFlag(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	// A bare `go test ./...` run passes flags like -test.timeout and
	// -test.paniconexit0, never just -test.v.
	for _, arg := range []string{"-test.v", "-test.timeout=10m", "-test.paniconexit0", "-test.run=TestFoo"} {
		os.Args = []string{"pkg.test", arg}
		assert.True(t, isTestMode(), "expected test mode for %s", arg)
	}

	os.Args = []string{"mealvote_server", "--port=8080"}
	assert.False(t, isTestMode())
}

func TestChainingDoesNotMutateParent(t *testing.T) {
	log := New("test")

	child := log.Function("DoThing").File("thing.go")
	assert.NotNil(t, child)
	assert.NotSame(t, log, child)
}

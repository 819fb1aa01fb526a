package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "add-child", Map: "ops", Success: true})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "save-task", Map: "ops", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "use_case=add-child")
	assert.Contains(t, out, "map=ops")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestLogObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	obs := &recordingObserver{}
	assert.Same(t, obs, useCaseObserverOrNoop([]UseCaseObserver{nil, obs}))
}

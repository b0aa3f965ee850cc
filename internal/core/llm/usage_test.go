package llm

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usageRow struct {
	provider         string
	model            string
	task             string
	promptTokens     int
	completionTokens int
}

type captureUsageStore struct {
	rows chan usageRow
}

func newCaptureUsageStore() *captureUsageStore {
	return &captureUsageStore{rows: make(chan usageRow, 8)}
}

func (s *captureUsageStore) IncrementLLMUsage(_ context.Context, provider, model, task string, promptTokens, completionTokens int) error {
	s.rows <- usageRow{provider, model, task, promptTokens, completionTokens}

	return nil
}

func (s *captureUsageStore) waitForRow(t *testing.T) usageRow {
	t.Helper()

	select {
	case row := <-s.rows:
		return row
	case <-time.After(2 * time.Second):
		t.Fatal("no usage row persisted")

		return usageRow{}
	}
}

func TestUsageRecorderPersistsRow(t *testing.T) {
	logger := zerolog.Nop()
	store := newCaptureUsageStore()
	recorder := NewUsageRecorder(store, &logger)

	recorder.RecordTokenUsage(ProviderOpenAI, "gpt-4o-mini", TaskExtract, 120, 34)

	row := store.waitForRow(t)
	require.Equal(t, string(ProviderOpenAI), row.provider)
	assert.Equal(t, "gpt-4o-mini", row.model)
	assert.Equal(t, TaskExtract, row.task)
	assert.Equal(t, 120, row.promptTokens)
	assert.Equal(t, 34, row.completionTokens)
}

func TestUsageRecorderNilStore(t *testing.T) {
	logger := zerolog.Nop()
	recorder := NewUsageRecorder(nil, &logger)

	// Must not panic and must not block.
	recorder.RecordTokenUsage(ProviderAnthropic, "claude", TaskTranslate, 10, 5)
}

func TestNoopUsageRecorder(t *testing.T) {
	NoopUsageRecorder().RecordTokenUsage(ProviderMock, "mock", TaskExtract, 1, 1)
}

package service

import (
	"context"
	"errors"
	"testing"

	"ask-docs-go/internal/model"
	"ask-docs-go/internal/pipeline"
	"ask-docs-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	m.Run()
}

type fakeRetriever struct {
	matches []model.ChunkMatch
	err     error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, docs []model.UploadedDocument, question string) ([]model.ChunkMatch, error) {
	return f.matches, f.err
}

type fakeLLM struct {
	lastPrompt string
	answer     string
	err        error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) Close() error { return nil }

func TestAskBuildsPromptFromMatches(t *testing.T) {
	r := &fakeRetriever{matches: []model.ChunkMatch{
		{Content: "The capital of France is Paris."},
		{Content: "France is in Europe."},
	}}
	l := &fakeLLM{answer: "Paris"}
	svc := NewQAService(r, l)

	answer, err := svc.Ask(context.Background(), "What is the capital of France?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)

	assert.Contains(t, l.lastPrompt, "The capital of France is Paris.")
	assert.Contains(t, l.lastPrompt, "France is in Europe.")
	assert.Contains(t, l.lastPrompt, "What is the capital of France?")
	assert.Contains(t, l.lastPrompt, "answer is not available in the context")
}

func TestAskPropagatesRetrievalError(t *testing.T) {
	wantErr := pipeline.NewStageError(pipeline.StageRetrieval, errors.New("index gone"))
	svc := NewQAService(&fakeRetriever{err: wantErr}, &fakeLLM{})

	_, err := svc.Ask(context.Background(), "q", nil)
	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageRetrieval, se.Stage)
}

func TestAskWrapsGenerationError(t *testing.T) {
	r := &fakeRetriever{matches: []model.ChunkMatch{{Content: "ctx"}}}
	svc := NewQAService(r, &fakeLLM{err: errors.New("provider down")})

	_, err := svc.Ask(context.Background(), "q", nil)
	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageGeneration, se.Stage)
}

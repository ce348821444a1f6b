package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brushquote/internal/generator"
	"brushquote/internal/port"
	"brushquote/mocks"
)

func fallbackOutput(model string) *port.GenerateOutput {
	return &port.GenerateOutput{
		Content:    json.RawMessage(`{"proposal":{},"upsells":[]}`),
		ModelUsed:  model,
		PromptUsed: "test prompt",
	}
}

func fallbackInput() port.GenerateInput {
	return port.GenerateInput{Values: map[string]any{"client_name": "Jordan"}}
}

func TestFallbackGenerator_FirstSucceeds(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(fallbackOutput("claude"), nil)

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "claude", result.ModelUsed)
	g2.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestFallbackGenerator_FirstFails_SecondSucceeds(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, errors.New("generic error"))
	g2.On("Generate", mock.Anything, input).Return(fallbackOutput("gpt-4o"), nil)

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)
}

func TestFallbackGenerator_FirstRateLimited_SecondSucceeds(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 60))
	g2.On("Generate", mock.Anything, input).Return(fallbackOutput("gpt-4o"), nil)

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)
}

func TestFallbackGenerator_AllRateLimited(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 60))
	g2.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("openai", errors.New("429"), 30))

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)

	assert.Nil(t, result)
	require.Error(t, err)

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackGenerator_AllFail_NonRateLimit(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, errors.New("error 1"))
	g2.On("Generate", mock.Anything, input).Return(nil, errors.New("error 2"))

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all generators failed")

	var rlErr *generator.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackGenerator_SkipsOpenCircuit(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 60)).Once()
	g2.On("Generate", mock.Anything, input).Return(fallbackOutput("gpt-4o"), nil)

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)

	// Second call immediately: the first generator is skipped while its
	// circuit is still open.
	result, err = fg.Generate(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)

	g1.AssertNumberOfCalls(t, "Generate", 1)
}

func TestFallbackGenerator_CircuitAutoCloses(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 1)).Once()
	g2.On("Generate", mock.Anything, input).Return(fallbackOutput("gpt-4o"), nil).Once()

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)

	time.Sleep(1100 * time.Millisecond)

	g1.On("Generate", mock.Anything, input).Return(fallbackOutput("claude"), nil).Once()

	result, err = fg.Generate(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
}

func TestFallbackGenerator_ConcurrentSafety(t *testing.T) {
	g1 := new(mocks.MockProposalGenerator)
	g2 := new(mocks.MockProposalGenerator)

	input := fallbackInput()
	g1.On("Generate", mock.Anything, input).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 5)).Maybe()
	g2.On("Generate", mock.Anything, input).Return(fallbackOutput("gpt-4o"), nil).Maybe()

	fg := generator.NewFallbackGenerator(
		[]port.ProposalGenerator{g1, g2},
		[]string{"claude", "openai"},
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fg.Generate(context.Background(), input)
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()
}

package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjipeng/promptrun/internal/errors"
	"github.com/benjipeng/promptrun/internal/llm"
)

// mockCompleter records calls and plays back a canned response
type mockCompleter struct {
	response string
	err      error
	calls    int
	system   string
	user     string
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.system = systemPrompt
	m.user = userPrompt
	return m.response, m.err
}

func testModelID(t *testing.T) llm.ModelID {
	t.Helper()
	id, err := llm.ParseModelID("google-gla:gemini-1.5-flash")
	require.NoError(t, err)
	return id
}

func TestRunSync_ReturnsNonEmptyOutput(t *testing.T) {
	mock := &mockCompleter{response: `The first known use of "hello, world" was in a 1974 textbook about the C programming language.`}
	a := New(testModelID(t), "Be concise, reply with one sentence.", mock)

	result, err := a.RunSync(context.Background(), `Where does "hello world" come from?`)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Output)
	assert.Equal(t, mock.response, result.Output)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, "Be concise, reply with one sentence.", mock.system)
	assert.Equal(t, `Where does "hello world" come from?`, mock.user)
}

func TestRunSync_MetadataPopulated(t *testing.T) {
	mock := &mockCompleter{response: "hi"}
	a := New(testModelID(t), "", mock)

	result, err := a.RunSync(context.Background(), "hello")
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(result.Metadata.RunID))
	assert.Equal(t, "google-gla:gemini-1.5-flash", result.Metadata.Model.String())
	assert.Equal(t, len("hello"), result.Metadata.PromptChars)
	assert.Equal(t, len("hi"), result.Metadata.OutputChars)
	assert.False(t, result.Metadata.StartedAt.IsZero())
}

func TestRunSync_EmptyMessageRejectedBeforeCall(t *testing.T) {
	mock := &mockCompleter{response: "unused"}
	a := New(testModelID(t), "", mock)

	_, err := a.RunSync(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	assert.Equal(t, 0, mock.calls, "no network call may happen for an empty message")
}

func TestRunSync_SingleUse(t *testing.T) {
	mock := &mockCompleter{response: "once"}
	a := New(testModelID(t), "", mock)

	_, err := a.RunSync(context.Background(), "first")
	require.NoError(t, err)

	_, err = a.RunSync(context.Background(), "second")
	require.Error(t, err)
	assert.Equal(t, 1, mock.calls, "exactly one request per agent")
}

func TestRunSync_IndependentAgentsShareNoState(t *testing.T) {
	first := &mockCompleter{response: "answer one"}
	second := &mockCompleter{response: "answer two"}

	r1, err := New(testModelID(t), "", first).RunSync(context.Background(), "q")
	require.NoError(t, err)
	r2, err := New(testModelID(t), "", second).RunSync(context.Background(), "q")
	require.NoError(t, err)

	assert.NotEqual(t, r1.Metadata.RunID, r2.Metadata.RunID)
	assert.NotEqual(t, r1.Output, r2.Output)
}

func TestRunSync_ProviderErrorPropagates(t *testing.T) {
	mock := &mockCompleter{err: errors.AuthError("no usable credential")}
	a := New(testModelID(t), "", mock)

	_, err := a.RunSync(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestRunSync_EmptyProviderOutputIsError(t *testing.T) {
	mock := &mockCompleter{response: ""}
	a := New(testModelID(t), "", mock)

	_, err := a.RunSync(context.Background(), "hello")
	require.Error(t, err)
}

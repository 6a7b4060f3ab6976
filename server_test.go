package dyntools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoServer(opts ...Option) *Server {
	base := []Option{
		WithTools(DemoTools()...),
		WithPolicies(DemoUnlockPolicy()),
	}

	return NewServer("demo", "1.0.0", append(base, opts...)...)
}

func resultText(t *testing.T, result *CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*TextContent)
	require.True(t, ok)

	return text.Text
}

func TestServerMetadata(t *testing.T) {
	srv := NewServer("demo", "1.0.0")

	assert.Equal(t, "demo", srv.Name())
	assert.Equal(t, "1.0.0", srv.Version())
}

func TestEndToEndUnlockScenario(t *testing.T) {
	srv := demoServer()

	notified := make(chan string, 4)
	sess := srv.CreateSession(
		WithListChangedNotifier(func(_ context.Context, id string) error {
			notified <- id

			return nil
		}),
	)
	defer srv.DestroySession(sess)

	// Fresh session: seed tool only.
	infos, err := sess.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "greet", infos[0].Name)

	// First greet unlocks the rest.
	result, err := sess.Invoke(context.Background(), "greet", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Hello, Alice!", resultText(t, result))
	assert.Equal(t, uint64(1), sess.CallCount())

	infos, err = sess.List()
	require.NoError(t, err)
	assert.Len(t, infos, 4, "seed plus the three unlocked tools")

	select {
	case id := <-notified:
		assert.Equal(t, sess.ID(), id)
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-notified:
		t.Fatal("more than one notification for one dispatch")
	case <-time.After(50 * time.Millisecond):
	}

	// The status tool sees the running count through its context.
	result, err = sess.Invoke(context.Background(), "status", nil)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), sess.ID())
	assert.Contains(t, resultText(t, result), "call count 2")
}

func TestInvokeUnknownToolIsFault(t *testing.T) {
	srv := demoServer()
	sess := srv.CreateSession()

	defer srv.DestroySession(sess)

	_, err := sess.Invoke(context.Background(), "evaluate", map[string]any{"expression": "1"})

	var notFound *ToolNotFoundError

	require.ErrorAs(t, err, &notFound, "evaluate is locked until greet runs")
	assert.Equal(t, uint64(0), sess.CallCount())
}

func TestEvaluateTool(t *testing.T) {
	srv := demoServer()
	sess := srv.CreateSession()

	defer srv.DestroySession(sess)

	_, err := sess.Invoke(context.Background(), "greet", map[string]any{"name": "Bob"})
	require.NoError(t, err)

	t.Run("arithmetic result", func(t *testing.T) {
		result, err := sess.Invoke(context.Background(), "evaluate", map[string]any{"expression": "8 / 2"})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "4", resultText(t, result))
	})

	t.Run("division by zero is absorbed as result text", func(t *testing.T) {
		before := sess.CallCount()

		result, err := sess.Invoke(context.Background(), "evaluate", map[string]any{"expression": "8 / 0"})
		require.NoError(t, err, "handler failure never crosses as a fault")
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "division by zero")

		assert.Equal(t, before+1, sess.CallCount(), "the call still counted")
	})

	t.Run("malformed expression", func(t *testing.T) {
		result, err := sess.Invoke(context.Background(), "evaluate", map[string]any{"expression": "nope"})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid expression")
	})
}

func TestFarewellAndGreetDefaults(t *testing.T) {
	srv := demoServer()
	sess := srv.CreateSession()

	defer srv.DestroySession(sess)

	result, err := sess.Invoke(context.Background(), "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, stranger!", resultText(t, result))

	result, err = sess.Invoke(context.Background(), "farewell", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Goodbye, Alice!", resultText(t, result))
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := demoServer()

	a := srv.CreateSession()
	b := srv.CreateSession()

	defer srv.DestroySession(a)
	defer srv.DestroySession(b)

	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.Invoke(context.Background(), "greet", nil)
	require.NoError(t, err)

	aTools, err := a.List()
	require.NoError(t, err)
	assert.Len(t, aTools, 4)

	bTools, err := b.List()
	require.NoError(t, err)
	assert.Len(t, bTools, 1, "b's registry is untouched by a's unlock")
	assert.Equal(t, uint64(0), b.CallCount())
}

func TestDestroySession(t *testing.T) {
	srv := demoServer()
	sess := srv.CreateSession()

	srv.DestroySession(sess)
	srv.DestroySession(sess) // idempotent
	srv.DestroySession(nil)  // no-op

	_, err := sess.Invoke(context.Background(), "greet", nil)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSlidingWindowThroughServer(t *testing.T) {
	srv := NewServer("window", "1.0.0",
		WithTools(GreetTool()),
		WithPolicies(&SlidingWindow{Window: 3, Milestone: 5}),
	)

	sess := srv.CreateSession()
	defer srv.DestroySession(sess)

	for i := 0; i < 10; i++ {
		_, err := sess.Invoke(context.Background(), "greet", nil)
		require.NoError(t, err)
	}

	infos, err := sess.List()
	require.NoError(t, err)

	// greet + 3 windowed follow-ups + milestones at 5 and 10.
	assert.Len(t, infos, 6)
	assert.Equal(t, uint64(10), sess.CallCount())
}

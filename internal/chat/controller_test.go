package chat

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nova-chat/internal/client"
	"nova-chat/internal/models"
	"nova-chat/internal/preferences"
	"nova-chat/internal/theme"
)

type fakeProxy struct {
	mu      sync.Mutex
	replies map[string]client.Reply
	err     error
	asked   []string
}

func (f *fakeProxy) Ask(ctx context.Context, message string) (client.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, message)
	if f.err != nil {
		return client.Reply{}, f.err
	}
	return f.replies[message], nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestController(t *testing.T, proxy *fakeProxy) (*Controller, *fakeClipboard) {
	t.Helper()
	cb := &fakeClipboard{}
	c := NewController(NewState(), Deps{
		Proxy:       proxy,
		Clipboard:   cb,
		Theme:       theme.NewManager(preferences.NewMemoryStore(), func() bool { return false }),
		DownloadDir: t.TempDir(),
		Logger:      zerolog.New(io.Discard),
	})
	return c, cb
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, models.ModelGPT4, s.Params.Model)
	assert.Equal(t, 0.5, s.Params.Temperature)
	assert.Equal(t, 100, s.Params.MaxTokens)
	assert.Empty(t, s.History)
}

func TestSubmit_SuccessAppendsTurn(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{"What is Go?": {Text: "A language.", Status: 200}}}
	c, _ := newTestController(t, proxy)

	require.True(t, c.Submit(context.Background(), "What is Go?"))

	s := c.State()
	assert.Equal(t, "A language.", s.Response)
	require.Len(t, s.History, 1)
	assert.Equal(t, models.ChatTurn{Prompt: "What is Go?", Response: "A language."}, s.History[0])
}

func TestSubmit_BlankPromptIsNoop(t *testing.T) {
	for _, prompt := range []string{"", " ", "\n\t  "} {
		proxy := &fakeProxy{}
		c, _ := newTestController(t, proxy)

		assert.False(t, c.Submit(context.Background(), prompt))
		assert.Empty(t, proxy.asked, "no request for %q", prompt)
		assert.Empty(t, c.State().History)
		assert.Empty(t, c.State().Response)
	}
}

func TestSubmit_MissingReplyUsesFallback(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{}}
	c, _ := newTestController(t, proxy)

	c.Submit(context.Background(), "hello")

	s := c.State()
	assert.Equal(t, FallbackReply, s.Response)
	require.Len(t, s.History, 1)
	assert.Equal(t, "", s.History[0].Response)
}

func TestSubmit_UpstreamErrorReplyIsRecorded(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{"hi": {Text: "Error from OpenAI API", Status: 429}}}
	c, _ := newTestController(t, proxy)

	c.Submit(context.Background(), "hi")

	s := c.State()
	assert.Equal(t, "Error from OpenAI API", s.Response)
	assert.Equal(t, []models.ChatTurn{{Prompt: "hi", Response: "Error from OpenAI API"}}, s.History)
}

func TestSubmit_TransportFailureSkipsHistory(t *testing.T) {
	proxy := &fakeProxy{err: errors.New("connection refused")}
	c, _ := newTestController(t, proxy)

	require.True(t, c.Submit(context.Background(), "hi"))

	s := c.State()
	assert.Equal(t, ErrorReply, s.Response)
	assert.Empty(t, s.History)
}

func TestSubmit_DoesNotSendParameters(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{"hi": {Text: "ok"}}}
	c, _ := newTestController(t, proxy)
	c.SetModel(models.ModelCustom)
	c.SetTemperature(0.9)

	c.Submit(context.Background(), "hi")

	assert.Equal(t, []string{"hi"}, proxy.asked)
}

func TestComplete_LastArrivalWins(t *testing.T) {
	c, _ := newTestController(t, &fakeProxy{})

	first, ok := c.Begin("first")
	require.True(t, ok)
	second, ok := c.Begin("second")
	require.True(t, ok)
	assert.False(t, c.IsLatest(first))
	assert.True(t, c.IsLatest(second))

	c.Complete(second, Outcome{Reply: "reply two"})
	c.NewChat()
	c.Complete(first, Outcome{Reply: "reply one"})

	s := c.State()
	assert.Equal(t, "reply one", s.Response, "late reply overwrites the display")
	assert.Equal(t, []models.ChatTurn{
		{Prompt: "second", Response: "reply two"},
		{Prompt: "first", Response: "reply one"},
	}, s.History)
}

func TestSubmit_Concurrent(t *testing.T) {
	replies := map[string]client.Reply{}
	for i := 0; i < 20; i++ {
		p := strings.Repeat("x", i+1)
		replies[p] = client.Reply{Text: "r" + p}
	}
	c, _ := newTestController(t, &fakeProxy{replies: replies})

	var wg sync.WaitGroup
	for p := range replies {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			c.Submit(context.Background(), p)
		}(p)
	}
	wg.Wait()

	assert.Len(t, c.State().History, len(replies))
}

func TestNewChat_KeepsHistory(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{"hi": {Text: "hello"}}}
	c, _ := newTestController(t, proxy)
	c.SetPrompt("hi")
	c.Submit(context.Background(), "hi")

	c.NewChat()

	s := c.State()
	assert.Empty(t, s.Params.Prompt)
	assert.Empty(t, s.Response)
	assert.Len(t, s.History, 1)
}

func TestCopyResponse(t *testing.T) {
	proxy := &fakeProxy{replies: map[string]client.Reply{"hi": {Text: "copy me"}}}
	c, cb := newTestController(t, proxy)

	copied, err := c.CopyResponse()
	require.NoError(t, err)
	assert.False(t, copied)
	assert.Empty(t, cb.text)

	c.Submit(context.Background(), "hi")
	copied, err = c.CopyResponse()
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, "copy me", cb.text)

	cb.err = errors.New("no clipboard utility")
	copied, err = c.CopyResponse()
	assert.Error(t, err)
	assert.False(t, copied)
}

func TestDownloadResponse(t *testing.T) {
	body := "line one\n  indented ✓\r\nno trailing newline"
	proxy := &fakeProxy{replies: map[string]client.Reply{"hi": {Text: body}}}
	c, _ := newTestController(t, proxy)

	path, err := c.DownloadResponse()
	require.NoError(t, err)
	assert.Empty(t, path)
	_, statErr := os.Stat(filepath.Join(c.downloadDir, DownloadFileName))
	assert.True(t, os.IsNotExist(statErr), "no file for an empty response")

	c.Submit(context.Background(), "hi")
	path, err = c.DownloadResponse()
	require.NoError(t, err)
	assert.Equal(t, DownloadFileName, filepath.Base(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(body), written)
}

func TestParameterClamping(t *testing.T) {
	c, _ := newTestController(t, &fakeProxy{})

	assert.InDelta(t, 1.0, c.SetTemperature(3), 1e-9)
	assert.InDelta(t, 0.0, c.SetTemperature(-1), 1e-9)
	assert.InDelta(t, 0.3, c.SetTemperature(0.26), 1e-9)
	assert.InDelta(t, 0.4, c.AdjustTemperature(1), 1e-9)

	assert.Equal(t, 400, c.SetMaxTokens(1000))
	assert.Equal(t, 10, c.SetMaxTokens(0))
	assert.Equal(t, 110, c.SetMaxTokens(105))
	assert.Equal(t, 100, c.AdjustMaxTokens(-1))
}

func TestCycleModel(t *testing.T) {
	c, _ := newTestController(t, &fakeProxy{})

	assert.Equal(t, models.ModelGPT35, c.CycleModel())
	assert.Equal(t, models.ModelCustom, c.CycleModel())
	assert.Equal(t, models.ModelGPT4, c.CycleModel())
}

func TestThemeToggleUpdatesState(t *testing.T) {
	c, _ := newTestController(t, &fakeProxy{})
	ctx := context.Background()

	require.NoError(t, c.LoadTheme(ctx))
	assert.False(t, c.State().DarkMode)

	require.NoError(t, c.ToggleTheme(ctx))
	assert.True(t, c.State().DarkMode)

	require.NoError(t, c.ToggleTheme(ctx))
	assert.False(t, c.State().DarkMode)
}

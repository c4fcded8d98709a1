// Package chat holds the client-side form state and the operations the UI triggers on it.
package chat

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"nova-chat/internal/client"
	"nova-chat/internal/models"
	"nova-chat/internal/theme"
)

// Text shown to the user. These never come from the proxy.
const (
	FallbackReply    = "No response received."
	ErrorReply       = "❌ Error calling API."
	CopiedNotice     = "Response copied to clipboard!"
	DownloadFileName = "nova-response.txt"
)

// State is everything the view renders. History is append-only.
type State struct {
	Params   models.RequestParameters `json:"params"`
	Response string                   `json:"response"`
	History  []models.ChatTurn        `json:"history"`
	DarkMode bool                     `json:"dark_mode"`
}

func NewState() *State {
	return &State{Params: models.DefaultRequestParameters()}
}

// Asker sends one message to the proxy.
type Asker interface {
	Ask(ctx context.Context, message string) (client.Reply, error)
}

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Submission is an in-flight request. Seq grows by one per accepted submit.
type Submission struct {
	Seq    uint64
	Prompt string
}

// Outcome is what came back for a Submission. Err is set for transport and decode failures only.
type Outcome struct {
	Reply string
	Err   error
}

type Deps struct {
	Proxy       Asker
	Clipboard   Clipboard
	Theme       *theme.Manager
	DownloadDir string
	Logger      zerolog.Logger
}

type Controller struct {
	mu          sync.Mutex
	state       *State
	proxy       Asker
	clipboard   Clipboard
	theme       *theme.Manager
	downloadDir string
	log         zerolog.Logger
	seq         uint64
}

func NewController(state *State, deps Deps) *Controller {
	if state == nil {
		state = NewState()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = SystemClipboard{}
	}
	if deps.DownloadDir == "" {
		deps.DownloadDir = "."
	}
	return &Controller{
		state:       state,
		proxy:       deps.Proxy,
		clipboard:   deps.Clipboard,
		theme:       deps.Theme,
		downloadDir: deps.DownloadDir,
		log:         deps.Logger,
	}
}

// State returns a copy safe to read while submissions complete.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := *c.state
	s.History = append([]models.ChatTurn(nil), c.state.History...)
	return s
}

func (c *Controller) SetPrompt(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Params.Prompt = text
}

func (c *Controller) SetModel(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Params.Model = name
}

// CycleModel moves to the next entry of models.ModelOptions.
func (c *Controller) CycleModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := models.ModelOptions[0]
	for i, m := range models.ModelOptions {
		if m == c.state.Params.Model {
			next = models.ModelOptions[(i+1)%len(models.ModelOptions)]
			break
		}
	}
	c.state.Params.Model = next
	return next
}

// SetTemperature clamps to [0,1] and snaps to 0.1 steps.
func (c *Controller) SetTemperature(v float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Params.Temperature = snapTemperature(v)
	return c.state.Params.Temperature
}

func (c *Controller) AdjustTemperature(steps int) float64 {
	return c.SetTemperature(c.State().Params.Temperature + float64(steps)*models.TemperatureStep)
}

// SetMaxTokens clamps to [10,400] and snaps to steps of 10.
func (c *Controller) SetMaxTokens(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Params.MaxTokens = snapMaxTokens(n)
	return c.state.Params.MaxTokens
}

func (c *Controller) AdjustMaxTokens(steps int) int {
	return c.SetMaxTokens(c.State().Params.MaxTokens + steps*models.MaxTokensStep)
}

func snapTemperature(v float64) float64 {
	v = math.Max(models.MinTemperature, math.Min(models.MaxTemperature, v))
	return math.Round(v/models.TemperatureStep) * models.TemperatureStep
}

func snapMaxTokens(n int) int {
	if n < models.MinMaxTokens {
		n = models.MinMaxTokens
	}
	if n > models.MaxMaxTokens {
		n = models.MaxMaxTokens
	}
	return (n + models.MaxTokensStep/2) / models.MaxTokensStep * models.MaxTokensStep
}

// Begin accepts a prompt for sending. Blank prompts are rejected and leave no trace.
func (c *Controller) Begin(prompt string) (Submission, bool) {
	if strings.TrimSpace(prompt) == "" {
		return Submission{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return Submission{Seq: c.seq, Prompt: prompt}, true
}

// Send performs the proxy round trip for sub. It does not touch State.
func (c *Controller) Send(ctx context.Context, sub Submission) Outcome {
	reply, err := c.proxy.Ask(ctx, sub.Prompt)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Reply: reply.Text}
}

// Complete applies an outcome. Late outcomes are applied too: the last one to arrive is displayed.
func (c *Controller) Complete(sub Submission, out Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if out.Err != nil {
		c.log.Error().Err(out.Err).Uint64("seq", sub.Seq).Msg("error calling API")
		c.state.Response = ErrorReply
		return
	}

	if sub.Seq != c.seq {
		c.log.Debug().Uint64("seq", sub.Seq).Uint64("latest", c.seq).Msg("applying reply from an earlier submission")
	}

	if out.Reply != "" {
		c.state.Response = out.Reply
	} else {
		c.state.Response = FallbackReply
	}
	c.state.History = append(c.state.History, models.ChatTurn{Prompt: sub.Prompt, Response: out.Reply})
}

// Submit runs Begin, Send and Complete. It reports whether a request was made.
func (c *Controller) Submit(ctx context.Context, prompt string) bool {
	sub, ok := c.Begin(prompt)
	if !ok {
		return false
	}
	c.Complete(sub, c.Send(ctx, sub))
	return true
}

// IsLatest reports whether no submission was accepted after sub.
func (c *Controller) IsLatest(sub Submission) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sub.Seq == c.seq
}

// NewChat clears the prompt and the displayed response. History and in-flight requests are untouched.
func (c *Controller) NewChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Params.Prompt = ""
	c.state.Response = ""
}

// CopyResponse copies the displayed response. It returns false when there is nothing to copy.
func (c *Controller) CopyResponse() (bool, error) {
	response := c.State().Response
	if response == "" {
		return false, nil
	}
	if err := c.clipboard.WriteAll(response); err != nil {
		return false, fmt.Errorf("failed to copy response: %w", err)
	}
	return true, nil
}

// DownloadResponse writes the displayed response verbatim to nova-response.txt and returns its path.
// Nothing is written when the response is empty.
func (c *Controller) DownloadResponse() (string, error) {
	response := c.State().Response
	if response == "" {
		return "", nil
	}
	path := filepath.Join(c.downloadDir, DownloadFileName)
	if err := os.WriteFile(path, []byte(response), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// LoadTheme resolves the initial theme into State.
func (c *Controller) LoadTheme(ctx context.Context) error {
	if c.theme == nil {
		return nil
	}
	mode, err := c.theme.Load(ctx)
	c.mu.Lock()
	c.state.DarkMode = mode == theme.Dark
	c.mu.Unlock()
	return err
}

// ToggleTheme flips and persists the theme.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	if c.theme == nil {
		return nil
	}
	mode, err := c.theme.Toggle(ctx)
	c.mu.Lock()
	c.state.DarkMode = mode == theme.Dark
	c.mu.Unlock()
	return err
}

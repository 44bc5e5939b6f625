// Package agent implements the dialogue orchestrator: it routes each
// homeowner message through pending-state checks, task matching, intent
// classification, and property resolution before composing provider
// requests and driving the tool-call loop.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/krestn/HomeAI/internal/classifier"
	apperrors "github.com/krestn/HomeAI/internal/errors"
	"github.com/krestn/HomeAI/internal/memory"
	"github.com/krestn/HomeAI/internal/model"
	"github.com/krestn/HomeAI/internal/property"
	"github.com/krestn/HomeAI/internal/tools"
)

// WeatherSummarizer renders a ready-to-send weather reply. Implementations
// must degrade internally; Summary never fails.
type WeatherSummarizer interface {
	Summary(ctx context.Context) string
}

// Config carries the orchestrator's tunables.
type Config struct {
	// MaxPropertyToolCalls caps tool invocations on the property path.
	// Zero or negative disables the cap.
	MaxPropertyToolCalls int
}

// Agent orchestrates one conversation turn at a time per user.
type Agent struct {
	generator model.Generator
	resolver  *property.Resolver
	registry  *tools.Registry
	tasks     *memory.TaskStore
	sessions  memory.SessionStore
	weather   WeatherSummarizer
	logger    *zap.Logger

	maxPropertyCalls int

	mu    sync.Mutex
	turns map[int64]*sync.Mutex
}

// New creates an orchestrator. A nil logger falls back to a no-op logger.
func New(cfg Config, generator model.Generator, resolver *property.Resolver, registry *tools.Registry, tasks *memory.TaskStore, sessions memory.SessionStore, weather WeatherSummarizer, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxCalls := cfg.MaxPropertyToolCalls
	if maxCalls <= 0 {
		maxCalls = uncapped
	}
	return &Agent{
		generator:        generator,
		resolver:         resolver,
		registry:         registry,
		tasks:            tasks,
		sessions:         sessions,
		weather:          weather,
		logger:           logger,
		maxPropertyCalls: maxCalls,
		turns:            map[int64]*sync.Mutex{},
	}
}

// turnLock returns the per-user mutex, creating it on first use. Turns for
// the same user are serialized so pending-state reads and writes cannot
// interleave.
func (a *Agent) turnLock(userID int64) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.turns[userID]
	if !ok {
		lock = &sync.Mutex{}
		a.turns[userID] = lock
	}
	return lock
}

// Run processes one user message and returns the structured reply.
// propertyID, when non-nil, is the caller's explicit answer to a prior
// property-selection prompt.
func (a *Agent) Run(ctx context.Context, userID int64, message string, propertyID *int64) (*Response, error) {
	lock := a.turnLock(userID)
	lock.Lock()
	defer lock.Unlock()

	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)

	currentTasks := a.tasks.Tasks(userID)

	// Pending task confirmation takes priority over everything else. An
	// answer that is neither clearly positive nor negative leaves the
	// slot in place and falls through.
	pendingDesc, hasPending := a.sessions.PendingTaskConfirmation(userID)
	if hasPending {
		if _, yes := affirmativeTokens[lower]; yes {
			a.tasks.CompleteTask(userID, pendingDesc)
			a.sessions.ClearPendingTaskConfirmation(userID)
			reply := fmt.Sprintf("Got it. I've marked '%s' as completed.", pendingDesc)
			a.sessions.SetLastReply(userID, reply)
			return buildResponse(reply, nil, nil, false, a.tasks.Tasks(userID)), nil
		}
		if _, no := negativeTokens[lower]; no {
			a.sessions.ClearPendingTaskConfirmation(userID)
			a.sessions.SetLastReply(userID, taskKeptReply)
			return buildResponse(taskKeptReply, nil, nil, false, a.tasks.Tasks(userID)), nil
		}
	}

	if !hasPending {
		if matched := memory.FindTaskMatch(text, currentTasks); matched != "" {
			a.sessions.SetPendingTaskConfirmation(userID, matched)
			reply := fmt.Sprintf("Great! Should I mark %q as completed?", matched)
			a.sessions.SetLastReply(userID, reply)
			return buildResponse(reply, nil, nil, false, currentTasks), nil
		}
	}

	intents := classifier.Classify(text)

	// Weather never needs a property, even when open tasks would otherwise
	// pull the message onto the property path.
	if intents.IsWeather {
		a.sessions.ClearPendingPropertyRequest(userID)
		reply := a.weather.Summary(ctx)
		a.sessions.SetLastReply(userID, reply)
		return buildResponse(reply, nil, nil, false, a.tasks.Tasks(userID)), nil
	}

	if intents.IsDocument || (intents.IsGeneral && len(currentTasks) == 0) {
		return a.runGeneral(ctx, userID, text)
	}

	return a.runProperty(ctx, userID, text, propertyID)
}

// runGeneral answers questions that need no property context. Any stale
// property-selection prompt is abandoned first.
func (a *Agent) runGeneral(ctx context.Context, userID int64, text string) (*Response, error) {
	a.sessions.ClearPendingPropertyRequest(userID)

	messages := []model.Message{
		{Role: model.RoleSystem, Content: generalSystemPrompt},
		{Role: model.RoleUser, Content: text},
	}
	functions := a.registry.Functions(tools.GeneralToolNames()...)

	reply, err := a.runToolLoop(ctx, userID, messages, functions, nil, uncapped)
	if err != nil {
		return nil, err
	}

	a.sessions.SetLastReply(userID, reply)
	return buildResponse(reply, nil, nil, false, a.tasks.Tasks(userID)), nil
}

// runProperty handles the property-grounded path: resolve the property,
// disambiguate if needed, then drive the capped tool loop.
func (a *Agent) runProperty(ctx context.Context, userID int64, text string, propertyID *int64) (*Response, error) {
	pctx, err := a.resolver.ResolveContext(ctx, userID)
	if err != nil {
		if apperrors.IsUserFacing(err) {
			reply := apperrors.GetMessage(err)
			a.sessions.SetLastReply(userID, reply)
			return buildResponse(reply, nil, nil, false, a.tasks.Tasks(userID)), nil
		}
		return nil, err
	}

	active := pctx.Property
	if !pctx.Resolved {
		if propertyID != nil {
			selected := property.SelectByID(pctx.Options, *propertyID)
			if selected == nil {
				a.sessions.SetLastReply(userID, property.InvalidSelectionMessage)
				return buildResponse(property.InvalidSelectionMessage, nil, pctx.Options, true, a.tasks.Tasks(userID)), nil
			}
			active = selected
		}

		// Text inference can still trump the explicit selection when the
		// message names a property outright.
		if inferred := property.InferFromText(text, pctx.Options); inferred != nil {
			active = inferred
		}

		if active == nil {
			reply := a.buildMultiPropertyReply(ctx, text, pctx.Options)
			a.sessions.SetPendingPropertyRequest(userID, text)
			a.sessions.SetLastReply(userID, reply)
			return buildResponse(reply, nil, pctx.Options, true, a.tasks.Tasks(userID)), nil
		}
	}

	pendingMessage, hadPending := a.sessions.PendingPropertyRequest(userID)
	if hadPending {
		a.sessions.ClearPendingPropertyRequest(userID)
	}

	systemPrompt := buildHomeSystemPrompt(active, pctx.Options, a.tasks.Tasks(userID))

	agentMessage := text
	if hadPending {
		note := fmt.Sprintf("The user clarified the affected property is %s, %s.",
			active.Address, active.CityState)
		if text != "" {
			agentMessage = fmt.Sprintf("%s\n\n%s\n\nUser follow-up: %s", pendingMessage, note, text)
		} else {
			agentMessage = fmt.Sprintf("%s\n\n%s", pendingMessage, note)
		}
	}

	if last, ok := a.sessions.LastReply(userID); ok {
		agentMessage = fmt.Sprintf("Previous assistant reply:\n%s\n\nLatest user message:\n%s",
			last, agentMessage)
	}

	messages := []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: agentMessage},
	}
	functions := a.registry.Functions(tools.PropertyToolNames()...)
	override := &argOverride{address: active.Address, cityState: active.CityState}

	reply, err := a.runToolLoop(ctx, userID, messages, functions, override, a.maxPropertyCalls)
	if err != nil {
		return nil, err
	}

	a.sessions.SetLastReply(userID, reply)
	return buildResponse(reply, active, pctx.Options, false, a.tasks.Tasks(userID)), nil
}

// buildMultiPropertyReply asks the provider for a short empathetic
// acknowledgment, then appends the literal property list. The provider
// call degrades to a fixed sentence; this reply never fails.
func (a *Agent) buildMultiPropertyReply(ctx context.Context, text string, options []property.Property) string {
	intro := multiPropertyFallback

	resp, err := a.generator.Generate(ctx, &model.Request{
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: multiPropertyPrompt},
			{Role: model.RoleUser, Content: text},
		},
		MaxTokens: 120,
	})
	if err != nil {
		a.logger.Warn("disambiguation intro generation failed", zap.Error(err))
	} else if trimmed := strings.TrimSpace(resp.Text); trimmed != "" {
		intro = trimmed
	}

	return intro + "\n\nHere are the homes I have on file:\n" + property.FormatOptionList(options)
}

// buildHomeSystemPrompt assembles the property-path system prompt: the
// persona, the user's property roster, the resolved property, and the
// open task checklist.
func buildHomeSystemPrompt(active *property.Property, options []property.Property, taskList []memory.Task) string {
	summary := property.FormatSummary(options)
	if summary == "" {
		summary = "- No properties available."
	}

	var b strings.Builder
	b.WriteString(homeSystemPrompt)
	b.WriteString("\n\nUser properties on file:\n")
	b.WriteString(summary)
	b.WriteString("\n\nThe user is referring to this property:\n")
	fmt.Fprintf(&b, "Property ID: %d\n", active.ID)
	fmt.Fprintf(&b, "Address: %s\n", active.Address)
	fmt.Fprintf(&b, "City/State: %s\n", active.CityState)
	b.WriteString("Do not ask for the address unless the user explicitly changes properties.")
	b.WriteString("\n\nActive follow-up tasks:\n")
	b.WriteString(renderTaskChecklist(taskList))
	return b.String()
}

func renderTaskChecklist(taskList []memory.Task) string {
	if len(taskList) == 0 {
		return "- None."
	}
	lines := make([]string, 0, len(taskList))
	for _, t := range taskList {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s", mark, t.Description))
	}
	return strings.Join(lines, "\n")
}

package agent

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apperrors "github.com/krestn/HomeAI/internal/errors"
	"github.com/krestn/HomeAI/internal/model"
	"github.com/krestn/HomeAI/internal/tools"
)

// loopState tracks where the tool-call loop is between provider turns.
type loopState int

const (
	stateAwaitingModel loopState = iota
	stateExecutingTool
	stateDone
)

// uncapped disables the tool-call cap (general path).
const uncapped = -1

// argOverride pins lookup arguments to the resolved property. The model's
// own values for these fields are never trusted.
type argOverride struct {
	address   string
	cityState string
}

// runToolLoop drives the provider until it answers with text, executing
// requested tools along the way. maxCalls bounds successful tool
// executions; once reached, further calls are suppressed and the provider
// is told to answer directly.
func (a *Agent) runToolLoop(ctx context.Context, userID int64, messages []model.Message, functions []model.Function, override *argOverride, maxCalls int) (string, error) {
	var (
		pending *model.FunctionCall
		reply   string
		calls   int
	)

	state := stateAwaitingModel
	for state != stateDone {
		switch state {
		case stateAwaitingModel:
			resp, err := a.generator.Generate(ctx, &model.Request{
				Messages:  messages,
				Functions: functions,
			})
			if err != nil {
				return "", err
			}

			if resp.FunctionCall == nil {
				reply = resp.Text
				state = stateDone
				continue
			}

			if maxCalls != uncapped && calls >= maxCalls {
				// Cap reached: suppress the call and demand an answer.
				messages = append(messages, model.Message{
					Role:    model.RoleUser,
					Content: answerNowPrompt,
				})
				continue
			}

			pending = resp.FunctionCall
			state = stateExecutingTool

		case stateExecutingTool:
			messages = append(messages, a.executeCall(ctx, userID, pending, override)...)
			pending = nil
			calls++

			if maxCalls != uncapped && calls < maxCalls {
				messages = append(messages, model.Message{
					Role:    model.RoleUser,
					Content: callAnotherPrompt,
				})
			}
			state = stateAwaitingModel
		}
	}

	return reply, nil
}

// executeCall runs one tool call and renders the messages to feed back to
// the provider. Lookup failures become an {error: ...} payload so the
// model can explain the unavailability.
func (a *Agent) executeCall(ctx context.Context, userID int64, call *model.FunctionCall, override *argOverride) []model.Message {
	args := map[string]any{}
	if call.Arguments != "" {
		// Malformed arguments degrade to an empty object; required-arg
		// checks in the handlers surface the problem to the model.
		_ = json.Unmarshal([]byte(call.Arguments), &args)
	}

	if override != nil {
		if _, has := args["address"]; has || call.Name == tools.ToolHomeValue {
			args["address"] = override.address
		}
		if _, has := args["city_state"]; has || call.Name == tools.ToolLocalServices {
			args["city_state"] = override.cityState
		}
	}

	result, err := a.registry.Execute(ctx, call.Name, userID, args)

	var payload any = result
	if err != nil {
		a.logger.Warn("tool execution failed",
			zap.String("tool", call.Name), zap.Error(err))
		payload = map[string]any{"error": apperrors.GetMessage(err)}
	}

	content, merr := json.Marshal(payload)
	if merr != nil {
		content = []byte(`{"error": "unserializable tool result"}`)
	}

	out := []model.Message{{
		Role:    model.RoleFunction,
		Name:    call.Name,
		Content: string(content),
	}}

	if call.Name == tools.ToolLocalServices {
		out = append(out, model.Message{
			Role:    model.RoleUser,
			Content: serviceFormatPrompt,
		})
	}
	return out
}

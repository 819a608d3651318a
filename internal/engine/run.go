package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrMaxSteps is returned when the model keeps calling tools past MaxSteps.
var ErrMaxSteps = errors.New("agent exceeded max steps")

// Run executes the tool-calling loop until the model answers without tool
// calls, MaxSteps is reached, or an error occurs. st is modified in place.
//
// Steps increment only on success. LLM and tool retries happen inside a
// step and are counted in st.Retries by hooks that track them.
func Run(ctx context.Context, llm LLMClient, reg ToolRegistry, st *State, hooks Hooks, opts ChatOptions) error {
	st.Step = 0

	for st.Step < st.MaxSteps && !st.Done {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("execution cancelled: %w", err)
		}
		if err := stepOnce(ctx, llm, reg, st, hooks, opts); err != nil {
			return err
		}
		st.Step++
	}
	if !st.Done {
		return wrapStep(ErrMaxSteps, st, "run")
	}
	hooks.OnDone(ctx, st)
	return nil
}

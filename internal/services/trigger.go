package services

import "context"

// Sources of a sync or transfer, recorded in the activity log
const (
	TriggerAPI       = "api"
	TriggerUI        = "ui"
	TriggerCLI       = "cli"
	TriggerScheduler = "scheduler"
	TriggerTask      = "task"
)

type triggerKey struct{}

// WithTrigger records what started the operation carried by ctx.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFrom returns the trigger stored by WithTrigger, or "unknown".
func TriggerFrom(ctx context.Context) string {
	if trigger, ok := ctx.Value(triggerKey{}).(string); ok && trigger != "" {
		return trigger
	}
	return "unknown"
}

package domain

// Callback binds an execution function to the extra arguments it is invoked with.
type Callback struct {
	// Fn is the function to execute. A nil Fn behaves as a no-op.
	Fn Fn

	// Args are passed to Fn on every invocation, in order.
	Args []any
}

// Hook binds a hook function to the extra arguments it is invoked with.
type Hook struct {
	// Fn is the hook function. A nil Fn disables the hook.
	Fn HookFn

	// Args are passed to Fn on every invocation, in order.
	Args []any
}

// Hooks groups the optional hooks of a job.
type Hooks struct {
	// OnBefore runs right before the execution callback.
	// Its errors and panics are swallowed and never block execution.
	OnBefore Hook

	// OnFailure runs after the execution callback failed.
	// Its errors and panics are swallowed and never propagate out of the job.
	OnFailure Hook
}

package job

import (
	"context"
)

// control is the FnControl handed to the callbacks of one run.
type control struct {
	ctx        context.Context
	name       string
	attributes []string
	state      *state
}

func newControl(ctx context.Context, name string, attributes []string, st *state) *control {
	if ctx == nil {
		ctx = context.Background()
	}
	return &control{ctx: ctx, name: name, attributes: attributes, state: st}
}

// Context returns the context of the dispatch pass. The job itself never cancels it.
func (c *control) Context() context.Context { return c.ctx }

func (c *control) JobName() string { return c.name }

// Attributes returns a copy of the execution attributes captured when the run started.
func (c *control) Attributes() []string {
	out := make([]string, len(c.attributes))
	copy(out, c.attributes)
	return out
}

// SaveData stores custom runtime metadata for the current run.
//
// The stored data is visible to later callbacks of the same run
// and is part of the state handed to monitoring.
//
// Parameters:
//   - data: Key-value pairs representing custom metadata or execution state information.
func (c *control) SaveData(data map[string]interface{}) {
	c.state.saveData(data)
}

func (c *control) GetData() map[string]interface{} {
	return c.state.getData()
}

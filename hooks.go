package reactive

import "github.com/flowgraph/reactive/internal/engine"

// Hooks are the devtools observer callbacks a graph exposes. The core
// never uses these itself; they exist for external collaborators like
// cmd/inspect. Every field is optional.
type Hooks = engine.Hooks

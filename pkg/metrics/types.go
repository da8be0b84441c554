package metrics

import "github.com/arccache/arc/pkg/base"

// EvictionReason re-exports base.EvictionReason so collector implementations
// don't need to import pkg/base for a single type alias.
type EvictionReason = base.EvictionReason

// EvictionReasons re-exports base.EvictionReasons, the order counters are
// pre-registered in.
var EvictionReasons = base.EvictionReasons

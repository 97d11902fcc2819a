package consts

// CtxKey is the type used for context value keys across the tool.
type CtxKey string

const (
	CtxKeyRunID CtxKey = "run_id"
)

package idgen

import "github.com/viant/versionary/model/uid"

// NewFunc returns a new identifier of the requested variant. Override in
// tests for determinism.
var NewFunc = uid.New

// New is a thin wrapper around NewFunc.
func New(kind uid.Kind) uid.UID { return NewFunc(kind) }

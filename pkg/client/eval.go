package client

import (
	"context"

	"github.com/haystack-rest/haystack-go/pkg/session"
	"github.com/haystack-rest/haystack-go/pkg/value"
)

// EvalResult is the outcome of a standalone Eval. Token carries the
// auth token obtained during the call so the next Eval can skip the
// handshake; it is empty when the call rode on the token passed in.
type EvalResult struct {
	Grid  *value.Grid
	Token string
}

// Eval evaluates a single expression without keeping a client
// around. A token from an earlier result may be passed in; when it is
// empty or the server refuses it, a fresh exchange runs and the new
// token is reported. For repeated calls build a Client instead.
func Eval(ctx context.Context, cfg session.Config, token, expr string) (*EvalResult, error) {
	cfg.Token = token
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	g, err := exprGrid(expr)
	if err != nil {
		return nil, err
	}
	out, err := s.Call(ctx, "eval", g, session.FormatZinc)
	if err != nil {
		return nil, err
	}
	res := &EvalResult{Grid: out}
	if tok := s.Token(); tok != token {
		res.Token = tok
	}
	return res, nil
}

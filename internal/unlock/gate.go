// Package unlock provides the authentication gate that must grant access
// before the credential store is constructed.
package unlock

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Outcome is the result of one authentication attempt.
type Outcome struct {
	Granted bool
	Reason  string
}

func Granted() Outcome { return Outcome{Granted: true} }

func Denied(reason string) Outcome { return Outcome{Reason: reason} }

// Gate authenticates the local user. Each call yields exactly one outcome.
type Gate interface {
	Authenticate(ctx context.Context) Outcome
}

// Require runs g and converts a denial into common.ErrAccessDenied.
func Require(ctx context.Context, g Gate) error {
	out := g.Authenticate(ctx)
	if out.Granted {
		return nil
	}
	if out.Reason == "" {
		return common.ErrAccessDenied
	}
	return fmt.Errorf("%w: %s", common.ErrAccessDenied, out.Reason)
}

// Static is a gate with a fixed answer. The zero value denies.
type Static struct {
	Grant  bool
	Reason string
}

// AllowAll grants every request.
func AllowAll() Static { return Static{Grant: true} }

func (s Static) Authenticate(context.Context) Outcome {
	if s.Grant {
		return Granted()
	}
	return Denied(s.Reason)
}

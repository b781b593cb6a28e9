package signature

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"mit.edu/dsg/plansig/common"
	"mit.edu/dsg/plansig/planner"
)

// AppendScalarSignature appends the rendering of a scalar plan parameter to
// buf. A nil expression appends nothing. Integer literals append " <value>".
//
// Any other expression kind fails with UnrecognizedScalarKind: the builder has
// to learn the new kind before plans carrying it can be fingerprinted.
func AppendScalarSignature(buf *strings.Builder, e planner.Expr) error {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *planner.IntConst:
		if n == nil {
			return nil
		}
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(n.Value, 10))
		return nil
	}
	return errors.WithAssertionFailure(common.NewError(common.UnrecognizedScalarKind,
		"unhandled scalar kind %s in plan parameter", e.Kind()))
}

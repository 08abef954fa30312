package machine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mna/caplang/lang/types"
)

// AuditReport records the outcome of auditing one object literal's
// construction against its non-trivial auditor list: which auditors ran,
// and that every one of them approved (an auditor that does not approve
// fails the whole construction, so a memoized report is always all-true).
type AuditReport struct {
	Auditors []types.Value
	Approved []bool
}

// clipboard memoizes audit outcomes per distinct (auditor set, frame
// shape) key so that re-evaluating the same object literal — e.g. a
// method body containing an object expression, re-run on every call —
// does not re-run its auditors each time with the same inputs. Keyed by
// the ast.ObjectExpr node at the Context level (one clipboard per
// literal); within that, buildClipboardKey further distinguishes by the
// actual auditor/guard identities and frame names observed, since a
// closure can evaluate its auditor expressions to different objects
// across calls.
type clipboard struct {
	mu    sync.Mutex
	cache map[string]*AuditReport
}

func newClipboard() *clipboard {
	return &clipboard{cache: make(map[string]*AuditReport)}
}

// audit runs (or recalls) the audit for obj against auditors/guardAuditor.
// frameNames supplies the ordered name list a guard-map could be built
// from; this implementation folds that into the cache key directly rather
// than threading a separate guard-map value, since no auditor in this
// package's primitive set actually inspects the map's contents (see
// DESIGN.md).
func (c *clipboard) audit(t *types.Thread, obj types.Value, auditors []types.Value, guardAuditor types.Value, frameNames []string) (*AuditReport, error) {
	key := buildClipboardKey(auditors, guardAuditor, frameNames)

	c.mu.Lock()
	if r, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	report := &AuditReport{Auditors: auditors, Approved: make([]bool, len(auditors))}
	for i, a := range auditors {
		v, err := a.Call(t, "audit", []types.Value{obj}, nil)
		if err != nil {
			return nil, err
		}
		b, ok := v.(types.Bool)
		if !ok || !bool(b) {
			return nil, types.NewThrown(fmt.Sprintf("auditor %d rejected object %s", i, obj.TypeName()))
		}
		report.Approved[i] = true
	}

	c.mu.Lock()
	c.cache[key] = report
	c.mu.Unlock()
	return report, nil
}

func buildClipboardKey(auditors []types.Value, guardAuditor types.Value, frameNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "g%p|", guardAuditor)
	for _, a := range auditors {
		fmt.Fprintf(&b, "a%p,", a)
	}
	b.WriteByte('|')
	for _, n := range frameNames {
		b.WriteString(n)
		b.WriteByte(',')
	}
	return b.String()
}

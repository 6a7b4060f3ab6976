package policy

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/dyntools-go/internal/registry"
)

const (
	defaultWindow          = 3
	defaultFollowUpPrefix  = "followup"
	defaultMilestonePrefix = "milestone"

	// seqDigits pads minted sequence numbers so lexical order matches
	// numeric order. Pruning parses the number anyway; the padding keeps
	// listings readable in creation order.
	seqDigits = 20
)

// SlidingWindow mints one follow-up tool per invocation, named by the
// session counter, and retains only the most recent Window of them. On
// counts divisible by Milestone it additionally mints a milestone tool
// referencing that exact count.
//
// Only tools carrying the policy's own Prefix are ever pruned. The seed
// and every other tool are untouchable by construction; removing one of
// them requires a policy that names it deliberately.
type SlidingWindow struct {
	// Prefix names minted follow-up tools ("<prefix>_<seq>").
	// Defaults to "followup".
	Prefix string

	// Window is how many minted follow-up tools to retain.
	// Defaults to 3.
	Window int

	// Milestone mints an extra tool whenever the counter is divisible by
	// it. Zero disables milestones.
	Milestone int

	// MilestonePrefix names milestone tools ("<prefix>_<count>").
	// Defaults to "milestone".
	MilestonePrefix string

	// MintFollowUp overrides the default follow-up descriptor. The
	// returned tool keeps its own name; the policy names it.
	MintFollowUp func(name string, seq uint64) *registry.Tool

	// MintMilestone overrides the default milestone descriptor.
	MintMilestone func(name string, count uint64) *registry.Tool
}

// Name implements Policy.
func (p *SlidingWindow) Name() string { return "sliding_window" }

// Apply implements Policy.
func (p *SlidingWindow) Apply(snap []*registry.Tool, inv Invocation) registry.ChangeSet {
	prefix := p.Prefix
	if prefix == "" {
		prefix = defaultFollowUpPrefix
	}

	window := p.Window
	if window <= 0 {
		window = defaultWindow
	}

	var cs registry.ChangeSet

	name := mintedName(prefix, inv.Count)
	cs.Add = append(cs.Add, p.followUp(name, inv.Count))

	// Prune: keep the most recent `window` minted tools by sequence,
	// counting the one just added.
	type minted struct {
		name string
		seq  uint64
	}

	kept := []minted{{name: name, seq: inv.Count}}

	for _, t := range snap {
		seq, ok := mintedSeq(prefix, t.Name)
		if !ok || t.Name == name {
			continue
		}

		kept = append(kept, minted{name: t.Name, seq: seq})
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].seq > kept[j].seq })

	for _, m := range kept[min(window, len(kept)):] {
		cs.Remove = append(cs.Remove, m.name)
	}

	if p.Milestone > 0 && inv.Count%uint64(p.Milestone) == 0 {
		msPrefix := p.MilestonePrefix
		if msPrefix == "" {
			msPrefix = defaultMilestonePrefix
		}

		msName := fmt.Sprintf("%s_%d", msPrefix, inv.Count)
		cs.Add = append(cs.Add, p.milestone(msName, inv.Count))
	}

	return cs
}

func (p *SlidingWindow) followUp(name string, seq uint64) *registry.Tool {
	if p.MintFollowUp != nil {
		t := p.MintFollowUp(name, seq)
		t.Name = name

		return t
	}

	return &registry.Tool{
		Name:        name,
		Description: fmt.Sprintf("Follow-up tool minted after call %d", seq),
		InputSchema: &jsonschema.Schema{Type: "object"},
		Handler: func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return registry.TextResult(fmt.Sprintf("follow-up from call %d", seq)), nil
		},
	}
}

func (p *SlidingWindow) milestone(name string, count uint64) *registry.Tool {
	if p.MintMilestone != nil {
		t := p.MintMilestone(name, count)
		t.Name = name

		return t
	}

	return &registry.Tool{
		Name:        name,
		Description: fmt.Sprintf("Milestone reached at call %d", count),
		InputSchema: &jsonschema.Schema{Type: "object"},
		Handler: func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return registry.TextResult(fmt.Sprintf("milestone at call %d", count)), nil
		},
	}
}

// mintedName embeds the monotonic sequence zero-padded into the tool
// name. The counter, not wall-clock time, is the sort key: same-tick
// creation can never produce ambiguous ordering.
func mintedName(prefix string, seq uint64) string {
	return fmt.Sprintf("%s_%0*d", prefix, seqDigits, seq)
}

// mintedSeq reports the sequence embedded in a minted name, if the name
// carries the given prefix.
func mintedSeq(prefix, name string) (uint64, bool) {
	rest, ok := strings.CutPrefix(name, prefix+"_")
	if !ok {
		return 0, false
	}

	seq, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}

	return seq, true
}

package linkgraph

import (
	"reflect"
	"strings"
	"testing"
)

// identityResolver resolves every token to itself.
type identityResolver struct{}

func (identityResolver) Resolve(token string) (string, bool) { return token, true }

// prefixResolver drops tokens carrying the "missing:" prefix.
type prefixResolver struct{}

func (prefixResolver) Resolve(token string) (string, bool) {
	if strings.HasPrefix(token, "missing:") {
		return "", false
	}
	return token, true
}

// recorder counts NotifyChanged calls.
type recorder struct {
	topics []string
}

func (r *recorder) NotifyChanged(topic string) { r.topics = append(r.topics, topic) }

func TestReportAndOutbound(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md", "c.md", "b.md"}, "")

	got := s.Outbound("a.md")
	want := []string{"b.md", "c.md", "b.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outbound = %v, want %v (order and duplicates preserved)", got, want)
	}
}

func TestReportDropsUnresolved(t *testing.T) {
	s := NewStore(prefixResolver{}, nil)
	s.Report("a.md", []string{"b.md", "missing:ghost", "c.md"}, "")

	got := s.Outbound("a.md")
	want := []string{"b.md", "c.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outbound = %v, want %v", got, want)
	}
}

func TestReportReplacesFullSet(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md"}, "")
	s.Report("a.md", []string{"c.md"}, "")

	got := s.Outbound("a.md")
	if !reflect.DeepEqual(got, []string{"c.md"}) {
		t.Errorf("Outbound = %v, want [c.md]", got)
	}
	if in := s.Inbound("b.md"); len(in) != 0 {
		t.Errorf("stale inbound for b.md: %v", in)
	}
}

func TestReportIdempotent(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md"}, "id-a")
	first := s.Outbound("a.md")
	s.Report("a.md", []string{"b.md"}, "id-a")

	if got := s.Outbound("a.md"); !reflect.DeepEqual(got, first) {
		t.Errorf("state changed on identical re-report: %v vs %v", got, first)
	}
}

func TestRemoveAfterReport(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md"}, "id-a")
	s.Remove("a.md", "id-a")

	if got := s.Outbound("a.md"); len(got) != 0 {
		t.Errorf("Outbound after remove = %v, want []", got)
	}
	if got := s.OutboundByID("id-a"); len(got) != 0 {
		t.Errorf("OutboundByID after remove = %v, want []", got)
	}

	g, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Nodes) != 0 {
		t.Errorf("removed source still yields nodes: %v", g.Nodes)
	}
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	s := NewStore(identityResolver{}, &recorder{})
	s.Remove("never-reported.md", "")
	if got := s.Outbound("never-reported.md"); len(got) != 0 {
		t.Errorf("Outbound = %v, want []", got)
	}
}

func TestSourceIDMirrorsLatestReport(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"x.md"}, "shared")
	s.Report("b.md", []string{"y.md"}, "shared")

	// Later report wins on the id entry; both path entries stay intact.
	if got := s.OutboundByID("shared"); !reflect.DeepEqual(got, []string{"y.md"}) {
		t.Errorf("OutboundByID = %v, want [y.md]", got)
	}
	if got := s.Outbound("a.md"); !reflect.DeepEqual(got, []string{"x.md"}) {
		t.Errorf("Outbound(a.md) = %v, want [x.md]", got)
	}
}

func TestEmptySourceIDNotIndexed(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md"}, "")
	if got := s.OutboundByID(""); len(got) != 0 {
		t.Errorf("empty id should never be indexed, got %v", got)
	}
}

func TestInboundOrderAndDedupe(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("first.md", []string{"target.md", "target.md"}, "")
	s.Report("second.md", []string{"target.md"}, "")

	got := s.Inbound("target.md")
	want := []string{"first.md", "second.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Inbound = %v, want %v (report order, one entry per source)", got, want)
	}
}

func TestNotifierFiredOncePerMutation(t *testing.T) {
	rec := &recorder{}
	s := NewStore(identityResolver{}, rec)

	s.Report("a.md", []string{"b.md"}, "")
	s.Remove("a.md", "")
	s.Outbound("a.md")
	s.Inbound("a.md")
	if _, err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(rec.topics) != 2 {
		t.Fatalf("expected 2 notifications (reads never notify), got %d", len(rec.topics))
	}
	for _, topic := range rec.topics {
		if topic != TopicLinks {
			t.Errorf("topic = %q, want %q", topic, TopicLinks)
		}
	}
}

func TestOutboundReturnsCopy(t *testing.T) {
	s := NewStore(identityResolver{}, nil)
	s.Report("a.md", []string{"b.md"}, "")

	got := s.Outbound("a.md")
	got[0] = "mutated.md"
	if again := s.Outbound("a.md"); again[0] != "b.md" {
		t.Errorf("caller mutation leaked into the store: %v", again)
	}
}

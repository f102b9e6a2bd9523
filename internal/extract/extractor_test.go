package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperifyio/docsum/internal/fetch"
	"github.com/hyperifyio/docsum/internal/source"
)

func TestSet_RoutesEachKindToOneExtractor(t *testing.T) {
	s := NewSet(Options{})
	hits := map[source.Kind]int{}
	for _, k := range []source.Kind{source.KindURL, source.KindPDF, source.KindDOCX, source.KindCSV, source.KindTXT} {
		k := k
		s.Register(k, Func(func(context.Context, string) string {
			hits[k]++
			return k.String()
		}))
	}
	refs := source.Parse([]string{"https://a.test", "a.pdf", "a.docx", "a.csv", "a.txt"})
	for _, ref := range refs {
		got, ok := s.Extract(context.Background(), ref)
		if !ok || got != ref.Kind.String() {
			t.Fatalf("Extract(%q)=%q,%v", ref.Raw, got, ok)
		}
	}
	for k, n := range hits {
		if n != 1 {
			t.Fatalf("kind %v hit %d times", k, n)
		}
	}
	if len(hits) != 5 {
		t.Fatalf("expected 5 kinds routed, got %d", len(hits))
	}
}

func TestSet_UnsupportedNotHandled(t *testing.T) {
	s := NewSet(Options{})
	s.Register(source.KindUnsupported, Func(func(context.Context, string) string { return "x" }))
	if _, ok := s.Extract(context.Background(), source.Ref{Raw: "a.png", Kind: source.KindUnsupported}); ok {
		t.Fatalf("unsupported ref must not be handled")
	}
}

func TestURL_ExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><script>x()</script></head><body><p>Hello <i>web</i></p></body></html>"))
	}))
	defer srv.Close()

	u := &URL{Fetcher: &fetch.Client{}}
	if got := u.Extract(context.Background(), srv.URL); got != "Hello web" {
		t.Fatalf("got %q", got)
	}
}

type failingFetcher struct{}

func (failingFetcher) Get(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("connection refused")
}

func TestURL_FetchFailureYieldsEmpty(t *testing.T) {
	if got := (&URL{Fetcher: failingFetcher{}}).Extract(context.Background(), "http://unreachable.invalid"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := (&URL{}).Extract(context.Background(), "http://x.test"); got != "" {
		t.Fatalf("expected empty without fetcher, got %q", got)
	}
}

// Package source classifies raw input tokens (file paths or URLs) into the
// closed set of kinds the extractors understand.
package source

import "strings"

// Kind identifies which extractor handles a source reference.
type Kind int

const (
	KindUnsupported Kind = iota
	KindURL
	KindPDF
	KindDOCX
	KindCSV
	KindTXT
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindPDF:
		return "pdf"
	case KindDOCX:
		return "docx"
	case KindCSV:
		return "csv"
	case KindTXT:
		return "txt"
	default:
		return "unsupported"
	}
}

// Ref is a source reference tagged with its inferred kind.
type Ref struct {
	Raw  string
	Kind Kind
}

// Supported reports whether an extractor exists for the reference.
func (r Ref) Supported() bool { return r.Kind != KindUnsupported }

// extensions is checked in order; the first matching suffix wins.
var extensions = []struct {
	suffix string
	kind   Kind
}{
	{".pdf", KindPDF},
	{".docx", KindDOCX},
	{".csv", KindCSV},
	{".txt", KindTXT},
}

// Classify decides the kind of a raw source token. Anything starting with
// "http" is a URL; otherwise the extension is matched case-insensitively.
func Classify(raw string) Kind {
	if strings.HasPrefix(raw, "http") {
		return KindURL
	}
	lower := strings.ToLower(raw)
	for _, e := range extensions {
		if strings.HasSuffix(lower, e.suffix) {
			return e.kind
		}
	}
	return KindUnsupported
}

// Parse classifies every argument, preserving input order. Unsupported
// references are kept so callers can report them.
func Parse(args []string) []Ref {
	refs := make([]Ref, 0, len(args))
	for _, a := range args {
		refs = append(refs, Ref{Raw: a, Kind: Classify(a)})
	}
	return refs
}

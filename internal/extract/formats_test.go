package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCSV_JoinsFieldsAndRows(t *testing.T) {
	p := writeFile(t, "rows.csv", []byte("a,b\nc,d\n"))
	if got := (CSV{}).Extract(context.Background(), p); got != "a, b\nc, d\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCSV_QuotedAndRagged(t *testing.T) {
	p := writeFile(t, "ragged.csv", []byte("name,\"city, state\"\nsolo\n"))
	want := "name, city, state\nsolo\n"
	if got := (CSV{}).Extract(context.Background(), p); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCSV_BlankLinesAreEmptyRows(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"between rows":     {"a,b\n\nc,d\n", "a, b\n\nc, d\n"},
		"leading":          {"\n\na,b\n", "\n\na, b\n"},
		"trailing":         {"a,b\n\n", "a, b\n\n"},
		"crlf":             {"a,b\r\n\r\nc,d\r\n", "a, b\n\nc, d\n"},
		"no final newline": {"a,b\n\nc,d", "a, b\n\nc, d\n"},
		"only blank":       {"\n", "\n"},
		"multiline field":  {"\"x\ny\",z\n\nq\n", "x\ny, z\n\nq\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, "rows.csv", []byte(tc.in))
			if got := (CSV{}).Extract(context.Background(), p); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCSV_KeepsBOMInFirstField(t *testing.T) {
	p := writeFile(t, "bom.csv", []byte("\xef\xbb\xbfa,b\n"))
	if got := (CSV{}).Extract(context.Background(), p); got != "\ufeffa, b\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCSV_InvalidUTF8YieldsEmpty(t *testing.T) {
	p := writeFile(t, "latin1.csv", []byte("name\ncaf\xe9\n"))
	if got := (CSV{}).Extract(context.Background(), p); got != "" {
		t.Fatalf("expected empty for invalid UTF-8, got %q", got)
	}
}

func TestCSV_MissingFileYieldsEmpty(t *testing.T) {
	if got := (CSV{}).Extract(context.Background(), filepath.Join(t.TempDir(), "none.csv")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestText_Verbatim(t *testing.T) {
	p := writeFile(t, "hello.txt", []byte("Hello world\n  indented\n"))
	if got := (Text{}).Extract(context.Background(), p); got != "Hello world\n  indented\n" {
		t.Fatalf("got %q", got)
	}
}

func TestText_KeepsBOM(t *testing.T) {
	p := writeFile(t, "bom.txt", []byte("\xef\xbb\xbfHello"))
	if got := (Text{}).Extract(context.Background(), p); got != "\ufeffHello" {
		t.Fatalf("got %q", got)
	}
}

func TestText_InvalidUTF8YieldsEmpty(t *testing.T) {
	for name, data := range map[string][]byte{
		"stray bytes":    []byte("ok \xff\xfe bad"),
		"truncated rune": []byte("caf\xc3"),
	} {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, "bad.txt", data)
			if got := (Text{}).Extract(context.Background(), p); got != "" {
				t.Fatalf("expected empty for invalid UTF-8, got %q", got)
			}
		})
	}
}

func TestText_MissingFileYieldsEmpty(t *testing.T) {
	if got := (Text{}).Extract(context.Background(), filepath.Join(t.TempDir(), "none.txt")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>First</w:t></w:r><w:r><w:t xml:space="preserve"> paragraph</w:t></w:r></w:p>
    <w:p/>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>In table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p><w:r><w:t>Col</w:t><w:tab/><w:t>umn</w:t><w:br/><w:t>next line</w:t></w:r><w:r><w:delText>gone</w:delText></w:r></w:p>
    <w:sectPr/>
  </w:body>
</w:document>`

func writeDOCX(t *testing.T, parts map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return p
}

func TestDOCX_BodyParagraphsInOrder(t *testing.T) {
	p := writeDOCX(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   docxBody,
	})
	want := "First paragraph\n\nCol\tumn\nnext line"
	if got := (DOCX{}).Extract(context.Background(), p); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Only WordprocessingML text runs count; equation text is not paragraph text.
func TestDOCX_IgnoresOtherNamespaces(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
<w:body><w:p><w:r><w:t>Area is </w:t></w:r><m:oMath><m:r><m:t>x+1</m:t></m:r></m:oMath></w:p><w:p><w:r><w:t>done</w:t></w:r></w:p></w:body>
</w:document>`
	p := writeDOCX(t, map[string]string{"word/document.xml": body})
	if got := (DOCX{}).Extract(context.Background(), p); got != "Area is \ndone" {
		t.Fatalf("got %q", got)
	}
}

func TestDOCX_NotAZipYieldsEmpty(t *testing.T) {
	p := writeFile(t, "fake.docx", []byte("plain text, not a zip"))
	if got := (DOCX{}).Extract(context.Background(), p); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestDOCX_MissingMainPartYieldsEmpty(t *testing.T) {
	p := writeDOCX(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	if got := (DOCX{}).Extract(context.Background(), p); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

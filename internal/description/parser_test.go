package description

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
	"github.com/goliatone/go-vdesc/pkg/testsupport"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *recordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) find(msg string) (logEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.msg == msg {
			return entry, true
		}
	}
	return logEntry{}, false
}

func argValue(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1], true
		}
	}
	return nil, false
}

func TestParserParseReferenceExample(t *testing.T) {
	parser := NewParser()
	raw := "[TÍTULO]Foo[SUBTÍTULO]Bar[Apresentação do Modelo]Hello *World*[Motor]*Motor* 1.6 Flex"

	doc := parser.Parse(context.Background(), raw)
	if doc == nil {
		t.Fatalf("expected document, got nil")
	}

	wantPresentation := interfaces.InlineContent{plain("Hello "), bold("World")}
	if !reflect.DeepEqual(doc.Presentation, wantPresentation) {
		t.Fatalf("presentation = %#v, want %#v", doc.Presentation, wantPresentation)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected a single section, got %d: %#v", len(doc.Sections), doc.Sections)
	}

	section := doc.Sections[0]
	if section.Title != "Motor" {
		t.Fatalf("expected Motor section, got %q", section.Title)
	}
	if section.Slug == "" {
		t.Fatalf("expected section slug")
	}
	want := interfaces.PlainContent(interfaces.InlineContent{bold("Motor"), plain(" 1.6 Flex")})
	if !reflect.DeepEqual(section.Content, want) {
		t.Fatalf("content = %#v, want %#v", section.Content, want)
	}
}

func TestParserParseBlankInput(t *testing.T) {
	parser := NewParser()
	for _, raw := range []string{"", "   ", "\n\t \n"} {
		if doc := parser.Parse(context.Background(), raw); doc != nil {
			t.Fatalf("Parse(%q) = %#v, want nil", raw, doc)
		}
	}
}

func TestParserParseWithoutMarkers(t *testing.T) {
	doc := NewParser().Parse(context.Background(), "Veículo revisado, único dono.")
	if doc == nil {
		t.Fatalf("expected empty document, got nil")
	}
	if doc.HasPresentation() {
		t.Fatalf("expected no presentation, got %#v", doc.Presentation)
	}
	if doc.Sections == nil || len(doc.Sections) != 0 {
		t.Fatalf("expected empty non-nil sections, got %#v", doc.Sections)
	}
}

func TestParserParseLastPresentationWins(t *testing.T) {
	raw := "[Apresentação do Modelo]Primeira[Motor]1.0[APRESENTACAO DO MODELO]*Segunda*"

	doc := NewParser().Parse(context.Background(), raw)
	want := interfaces.InlineContent{bold("Segunda")}
	if !reflect.DeepEqual(doc.Presentation, want) {
		t.Fatalf("presentation = %#v, want %#v", doc.Presentation, want)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Title != "Motor" {
		t.Fatalf("unexpected sections: %#v", doc.Sections)
	}
}

func TestParserParseEmptyPresentationBody(t *testing.T) {
	doc := NewParser().Parse(context.Background(), "[Apresentação do Modelo]   [Motor]1.0")
	if doc.HasPresentation() {
		t.Fatalf("expected empty presentation, got %#v", doc.Presentation)
	}
}

func TestParserParseEmptyTrailingPresentationClearsEarlier(t *testing.T) {
	doc := NewParser().Parse(context.Background(), "[Apresentação do Modelo]Primeira[Motor]1.0[Apresentação do Modelo]")
	if doc.Presentation != nil {
		t.Fatalf("expected trailing empty presentation to clear the paragraph, got %#v", doc.Presentation)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("unexpected sections: %#v", doc.Sections)
	}
}

func TestParserParseLogsSectionOutcome(t *testing.T) {
	logger := &recordingLogger{}
	parser := NewParser(WithLogger(logger))

	parser.Parse(context.Background(), "[TÍTULO]Onix[Itens]Este modelo possui os seguintes itens: • Ar • Trava")

	entry, ok := logger.find("description.section.analyzed")
	if !ok {
		t.Fatalf("expected section log, got %#v", logger.entries)
	}
	if entry.level != "debug" {
		t.Fatalf("expected debug level, got %s", entry.level)
	}
	if kind, _ := argValue(entry.args, "content"); kind != "list" {
		t.Fatalf("expected list content field, got %v", kind)
	}
	if items, _ := argValue(entry.args, "items"); items != 2 {
		t.Fatalf("expected two items, got %v", items)
	}
	if intro, _ := argValue(entry.args, "intro"); intro != true {
		t.Fatalf("expected intro flag, got %v", intro)
	}
	if _, ok := logger.find("description.section.discarded"); !ok {
		t.Fatalf("expected discard trace, got %#v", logger.entries)
	}
}

func TestParserParseBase64Payload(t *testing.T) {
	plainText := "[Apresentação do Modelo]Sedã *completo*[Conforto]• Ar condicionado • Bancos em couro"
	raw := base64.StdEncoding.EncodeToString([]byte(plainText))

	parser := NewParser()
	encoded := parser.Parse(context.Background(), raw)
	direct := parser.Parse(context.Background(), plainText)
	if !reflect.DeepEqual(encoded, direct) {
		t.Fatalf("encoded payload parsed differently:\n got %#v\nwant %#v", encoded, direct)
	}
	if len(encoded.Sections) != 1 || !encoded.Sections[0].Content.IsList() {
		t.Fatalf("expected a list section, got %#v", encoded.Sections)
	}
}

func TestParserParseLogsDecodeFallback(t *testing.T) {
	logger := &recordingLogger{}
	parser := NewParser(WithLogger(logger))

	raw := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8, 0xf7, 0xf6, 0xf5, 0xf4, 0xf3, 0xf2, 0xf1, 0xf0, 0xef, 0xee, 0xed, 0xec, 0xeb, 0xea, 0xe9, 0xe8, 0xe7, 0xe6, 0xe5, 0xe4, 0xe3, 0xe2, 0xe1, 0xe0, 0xdf, 0xde, 0xdd, 0xdc, 0xdb, 0xda})
	doc := parser.Parse(context.Background(), raw)
	if doc == nil || len(doc.Sections) != 0 {
		t.Fatalf("expected empty document from undecodable payload, got %#v", doc)
	}

	entry, ok := logger.find("description.decode.fallback")
	if !ok {
		t.Fatalf("expected decode fallback log, got %#v", logger.entries)
	}
	if entry.level != "debug" {
		t.Fatalf("expected debug level, got %s", entry.level)
	}
	value, _ := argValue(entry.args, "error")
	err, _ := value.(error)
	if err == nil || !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category error, got %#v", value)
	}

	if _, ok := logger.find("description.parse.completed"); !ok {
		t.Fatalf("expected completion log")
	}
}

func TestParserParseRecoversFromPanic(t *testing.T) {
	logger := &recordingLogger{}
	// A parser without a vocabulary dereferences nil while classifying.
	parser := &Parser{decoder: DefaultDecoder(), analyzer: DefaultAnalyzer(), logger: logger}

	doc := parser.Parse(context.Background(), "[Motor]1.6 Flex")
	if doc != nil {
		t.Fatalf("expected nil document after panic, got %#v", doc)
	}

	entry, ok := logger.find("description.parse.recovered")
	if !ok {
		t.Fatalf("expected recovery log, got %#v", logger.entries)
	}
	if entry.level != "error" {
		t.Fatalf("expected error level, got %s", entry.level)
	}
	value, _ := argValue(entry.args, "error")
	err, _ := value.(error)
	if err == nil || !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Fatalf("expected internal category error, got %#v", value)
	}
}

func TestParserParseDuplicateTitlesGetDistinctSlugs(t *testing.T) {
	doc := NewParser().Parse(context.Background(), "[Motor]1.0[Motor]1.6[Motor]2.0")
	if len(doc.Sections) != 3 {
		t.Fatalf("expected three sections, got %d", len(doc.Sections))
	}

	first := doc.Sections[0].Slug
	if first == "" {
		t.Fatalf("expected slug for first section")
	}
	if doc.Sections[1].Slug != first+"-2" || doc.Sections[2].Slug != first+"-3" {
		t.Fatalf("unexpected slugs: %q %q %q", first, doc.Sections[1].Slug, doc.Sections[2].Slug)
	}
}

func TestParserParseCustomVocabulary(t *testing.T) {
	parser := NewParser(
		WithVocabulary(NewVocabulary([]string{"Interno"}, []string{"Resumo"})),
		WithAnalyzer(NewAnalyzer(5, 200)),
	)

	doc := parser.Parse(context.Background(), "[Interno]x[Resumo]Curto[TÍTULO]Fica[Itens]Inclui: • Ar • Trava")
	if !reflect.DeepEqual(doc.Presentation, interfaces.InlineContent{plain("Curto")}) {
		t.Fatalf("unexpected presentation: %#v", doc.Presentation)
	}
	if len(doc.Sections) != 2 || doc.Sections[0].Title != "TÍTULO" {
		t.Fatalf("unexpected sections: %#v", doc.Sections)
	}

	items := doc.Sections[1].Content
	wantIntro := interfaces.InlineContent{plain("Inclui:")}
	if !items.IsList() || !reflect.DeepEqual(items.Intro, wantIntro) || len(items.Items) != 2 {
		t.Fatalf("unexpected list content: %#v", items)
	}
}

func TestParserParseConcurrentUse(t *testing.T) {
	parser := NewParser()
	raw := testsupport.MustReadFixture(t, filepath.Join("testdata", "onix.txt"))
	want := parser.Parse(context.Background(), raw)

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := parser.Parse(context.Background(), raw); !reflect.DeepEqual(got, want) {
				errs <- "concurrent parse diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}

func TestParserParseGolden(t *testing.T) {
	raw := testsupport.MustReadFixture(t, filepath.Join("testdata", "onix.txt"))

	got := NewParser().Parse(context.Background(), raw)
	if got == nil {
		t.Fatalf("expected document")
	}
	for i := range got.Sections {
		if got.Sections[i].Slug == "" {
			t.Fatalf("section %q has no slug", got.Sections[i].Title)
		}
		got.Sections[i].Slug = ""
	}

	var want interfaces.ParsedDocument
	if err := testsupport.LoadGolden(filepath.Join("testdata", "onix.golden.json"), &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("parsed document mismatch:\n got %#v\nwant %#v", *got, want)
	}
}

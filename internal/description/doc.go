// Package description turns annotated vehicle description payloads into
// interfaces.ParsedDocument values: a presentation paragraph plus an ordered
// list of titled sections holding either a paragraph or a bullet list.
//
// The pipeline runs in named stages, each usable on its own:
//
//	Decoder.Decode        base64 detection and delimiter normalisation
//	SplitSections         [Title]body extraction
//	Vocabulary.Classify   discard / presentation / section
//	Analyzer.Analyze      intro clause and list detection
//	NormalizeItems        list entry segmentation and label split
//	ExtractRuns           *bold* and dangling *word markup
//
// Parser.Parse chains them and never panics or returns errors; a nil document
// means there was nothing to render.
package description

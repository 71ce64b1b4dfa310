package readfmt

// RenderOptions configures one render pass.
type RenderOptions struct {
	// GroupSize is the number of consecutive words sharing one color
	// group. Values below 1 are treated as 1.
	GroupSize int
	// Lang selects direction resolution and the emphasis language branch.
	Lang LanguageHint
	// LeadBold is the emphasis strength applied to every word.
	LeadBold LeadBoldStrength
}

// DefaultRenderOptions returns the options used when a caller supplies
// none: groups of three, automatic language detection, medium emphasis.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{GroupSize: 3, Lang: LangAuto, LeadBold: BoldMedium}
}

// Build assembles the document tree from a token stream in a single pass.
// Words receive consecutive ordinals across the whole document, a
// paragraph break closes the open run and paragraph, a single line break
// closes only the open run, and a space never changes grouping or
// direction state. The same tokens and options always produce the same
// tree.
func Build(tokens []Token, opts RenderOptions) *Document {
	groupSize := opts.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	doc := &Document{}
	var (
		para    *Paragraph
		run     *Run
		ordinal int
	)
	for i, tok := range tokens {
		switch tok.Kind {
		case KindNewline:
			if tok.IsParagraphBreak() {
				para, run = nil, nil
				continue
			}
			run = nil
			if para != nil {
				para.Items = append(para.Items, &LineBreak{})
			}
		case KindSpace:
			// A space binds to the open run when there is one, else to
			// the paragraph. With neither open it has no anchor and is
			// dropped.
			switch {
			case run != nil:
				run.Items = append(run.Items, &Space{})
			case para != nil:
				para.Items = append(para.Items, &Space{})
			}
		case KindWord:
			if para == nil {
				para = &Paragraph{Dir: paragraphDirection(tokens[i:], opts.Lang)}
				doc.Paragraphs = append(doc.Paragraphs, para)
			}
			dir := wordDirection(tok.Value, opts.Lang)
			if run == nil || run.Dir != dir {
				run = &Run{Dir: dir}
				para.Items = append(para.Items, run)
			}
			run.Items = append(run.Items, &Word{
				Text:     tok.Value,
				Ordinal:  ordinal,
				Group:    ordinal / groupSize,
				Dir:      dir,
				Emphasis: LeadBold(tok.Value, opts.LeadBold, opts.Lang),
			})
			ordinal++
		}
	}
	doc.WordCount = ordinal
	return doc
}

// paragraphDirection resolves the base direction of the paragraph opening
// at rest[0]: forced by the hint when one is set, otherwise taken from the
// first word before the next paragraph break. A paragraph with no word
// defaults to left-to-right.
func paragraphDirection(rest []Token, hint LanguageHint) Direction {
	switch hint {
	case LangArabic:
		return RTL
	case LangEnglish:
		return LTR
	}
	for _, tok := range rest {
		if tok.IsParagraphBreak() {
			break
		}
		if tok.Kind == KindWord {
			if IsArabicWord(tok.Value) {
				return RTL
			}
			return LTR
		}
	}
	return LTR
}

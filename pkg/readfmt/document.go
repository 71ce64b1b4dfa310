package readfmt

// Document is the structured output of Build: an ordered list of
// paragraphs ready for HTML serialization or direct traversal by a
// consumer that renders words itself.
type Document struct {
	Paragraphs []*Paragraph
	// WordCount is the total number of words across all paragraphs.
	WordCount int
}

// Paragraph is a maximal span of content between paragraph breaks. Dir is
// the paragraph's base direction, taken from its first word unless the
// language hint forces one.
type Paragraph struct {
	Dir   Direction
	Items []ParagraphItem
}

// ParagraphItem is a node that appears directly inside a paragraph: a
// direction run, a soft line break, or a space separating runs.
type ParagraphItem interface {
	paragraphItem()
}

// RunItem is a node that appears inside a direction run.
type RunItem interface {
	runItem()
}

// Run is a maximal sequence of consecutive words sharing one direction.
// Adjacent runs within a paragraph always differ in direction.
type Run struct {
	Dir   Direction
	Items []RunItem
}

// Word is a single rendered word.
type Word struct {
	Text string
	// Ordinal is the word's zero-based position in the whole document.
	// It keeps counting across paragraph breaks.
	Ordinal int
	// Group is Ordinal divided by the group size; group parity selects
	// the alternating color class.
	Group    int
	Dir      Direction
	Emphasis WordEmphasis
}

// Space is a single normalized space between words or runs.
type Space struct{}

// LineBreak is a soft break: the visual line ends, the paragraph and its
// word grouping continue.
type LineBreak struct{}

func (*Run) paragraphItem()       {}
func (*LineBreak) paragraphItem() {}
func (*Space) paragraphItem()     {}

func (*Word) runItem()  {}
func (*Space) runItem() {}

// Words returns the document's word nodes in reading order.
func (d *Document) Words() []*Word {
	words := make([]*Word, 0, d.WordCount)
	for _, para := range d.Paragraphs {
		for _, item := range para.Items {
			run, ok := item.(*Run)
			if !ok {
				continue
			}
			for _, ri := range run.Items {
				if w, ok := ri.(*Word); ok {
					words = append(words, w)
				}
			}
		}
	}
	return words
}

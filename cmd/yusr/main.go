// yusr is a command-line tool for converting documents into dyslexia-friendly reading material.
//
// The tool extracts the plain text of a PDF, TXT, HTML or Markdown document and
// reworks it with the Yusr reading pipeline: normalized whitespace, word group
// coloring and lead-bold emphasis, with correct bidirectional structure for
// Arabic, English and mixed content. Output can be an HTML fragment, a rendered
// PDF or the extracted plain text.
//
// Usage:
//
//	yusr -input document.pdf [options]
//
// Required flags:
//
//	-input string  Path to the input document (pdf, txt, html or md)
//
// Output options (at least one required):
//
//	-html string   Path to save the formatted HTML fragment
//	-pdf string    Path to save the formatted PDF
//	-text string   Path to save the extracted plain text
//
// Formatting options:
//
//	-lang string   Language hint: auto, en or ar (default "auto")
//	-group int     Words per color group (default 3)
//	-bold string   Lead emphasis strength: off, short, medium or strong (default "medium")
//
// PDF options:
//
//	-font-ttf string       Path to a UTF-8 TTF font, required for Arabic text
//	-font-ttf-bold string  Path to the bold variant of the TTF font
//	-no-shade              Disable alternating group shading
//	-overwrite             Overwrite output files if they exist
//
// Example:
//
//	yusr -input article.pdf -html article.html
//	yusr -input essay.md -pdf essay.pdf -font-ttf fonts/Amiri-Regular.ttf -lang ar
//	yusr -input notes.txt -text plain.txt -group 4 -bold strong
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Durar3Ali/Yusr/pkg/export"
	"github.com/Durar3Ali/Yusr/pkg/extract"
	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

func main() {
	// Required flags.
	inputPath := flag.String("input", "", "Path to the input document (required)")

	// Output flags
	htmlPath := flag.String("html", "", "Path to save the formatted HTML fragment")
	pdfPath := flag.String("pdf", "", "Path to save the formatted PDF")
	textPath := flag.String("text", "", "Path to save the extracted plain text")

	// Formatting flags
	lang := flag.String("lang", "auto", "Language hint: auto, en or ar")
	group := flag.Int("group", 3, "Words per color group")
	bold := flag.String("bold", "medium", "Lead emphasis strength: off, short, medium or strong")

	// PDF flags
	fontTTF := flag.String("font-ttf", "", "Path to a UTF-8 TTF font for PDF output")
	fontTTFBold := flag.String("font-ttf-bold", "", "Path to the bold variant of the TTF font")
	noShade := flag.Bool("no-shade", false, "Disable alternating group shading in PDF output")
	overwrite := flag.Bool("overwrite", false, "Overwrite output files if they already exist")

	flag.Parse()

	// Create a map of provided flags to validate
	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate that provided output flags have values
	hasError := false
	validateFlag := func(name string, value string) {
		if providedFlags[name] && value == "" {
			fmt.Fprintf(os.Stderr, "Error: -%s flag requires a value\n", name)
			hasError = true
		}
	}

	validateFlag("html", *htmlPath)
	validateFlag("pdf", *pdfPath)
	validateFlag("text", *textPath)

	if hasError {
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *htmlPath == "" && *pdfPath == "" && *textPath == "" {
		fmt.Fprintln(os.Stderr, "Error: At least one output flag must be provided (-html, -pdf or -text)")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	langHint, err := readfmt.ParseLanguageHint(*lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	boldStrength, err := readfmt.ParseLeadBoldStrength(*bold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *group < 1 {
		fmt.Fprintln(os.Stderr, "Error: -group must be at least 1")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	for _, outPath := range []string{*htmlPath, *pdfPath, *textPath} {
		if outPath == "" {
			continue
		}
		if _, err := os.Stat(outPath); err == nil {
			if !*overwrite {
				fmt.Printf("Output file %s already exists. Use -overwrite to overwrite.\n", outPath)
				os.Exit(1)
			}
			os.Remove(outPath)
		}
	}

	fmt.Println("Extracting text from:", *inputPath)
	content, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	text, err := extract.Text(*inputPath, "", content)
	if errors.Is(err, extract.ErrNoTextLayer) {
		log.Fatalf("This PDF has no text layer; run it through OCR first (yusrd can do this with a Document AI processor configured)")
	}
	if err != nil {
		log.Fatalf("Failed to extract text: %v", err)
	}

	// Write extracted text output if flag is provided.
	if *textPath != "" {
		if err := os.WriteFile(*textPath, []byte(text), 0644); err != nil {
			log.Fatalf("Failed to write text output: %v", err)
		}
		fmt.Println("Extracted text saved to:", *textPath)
	}

	if *htmlPath == "" && *pdfPath == "" {
		return
	}

	opts := readfmt.RenderOptions{
		GroupSize: *group,
		Lang:      langHint,
		LeadBold:  boldStrength,
	}
	tokens := readfmt.Tokenize(readfmt.Normalize(text))

	// Write formatted HTML output if flag is provided.
	if *htmlPath != "" {
		html, err := readfmt.Render(tokens, opts)
		if err != nil {
			log.Fatalf("Failed to render HTML: %v", err)
		}
		if err := os.WriteFile(*htmlPath, []byte(html), 0644); err != nil {
			log.Fatalf("Failed to write HTML output: %v", err)
		}
		fmt.Println("Formatted HTML saved to:", *htmlPath)
	}

	// Write formatted PDF output if flag is provided.
	if *pdfPath != "" {
		cfg := export.DefaultConfig()
		cfg.ShadeGroups = !*noShade
		if *fontTTF != "" {
			cfg.Font.Name = strings.TrimSuffix(filepath.Base(*fontTTF), filepath.Ext(*fontTTF))
			cfg.Font.TTFPath = *fontTTF
			cfg.Font.BoldTTFPath = *fontTTFBold
		}

		doc := readfmt.Build(tokens, opts)
		pdfBytes, err := export.PDF(doc, cfg)
		if err != nil {
			log.Fatalf("Failed to render PDF: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdfBytes, 0644); err != nil {
			log.Fatalf("Failed to write PDF output: %v", err)
		}
		fmt.Println("Formatted PDF saved to:", *pdfPath)
	}
}

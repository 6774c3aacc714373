package wordcount

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"WebWordCount/internal/dictionary"
	"WebWordCount/internal/types"
)

// Process consumes a raw HTTP response stream and tallies word statistics
// for its body. The stream starts at the status line; header lines are
// skipped up to the first blank line. A connection dropping mid-body
// truncates the token stream silently: whatever was read is counted and
// the result is still produced.
func Process(r io.Reader, name string, dict *dictionary.Dictionary) types.CountResult {
	br := bufio.NewReader(r)
	contentType := skipHeaders(br)

	result := types.CountResult{File: name}
	if strings.Contains(contentType, "text/html") {
		countHTML(br, dict, &result)
	} else {
		countText(br, dict, &result)
	}
	return result
}

// skipHeaders discards lines up to and including the header/body separator
// (an empty line or a lone "\r"), or until the stream ends. It returns the
// Content-Type header value, lowercased, if one was seen.
func skipHeaders(br *bufio.Reader) string {
	var contentType string
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return contentType
		}
		if v, ok := strings.CutPrefix(strings.ToLower(line), "content-type:"); ok {
			contentType = strings.TrimSpace(v)
		}
		if err != nil {
			return contentType
		}
	}
}

// countText tokenizes a plain-text body: whitespace-delimited chunks, each
// with punctuation replaced by spaces, re-split and lowercased.
func countText(r io.Reader, dict *dictionary.Dictionary, result *types.CountResult) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	// A single token is capped at 4MB; an unbroken run past that stops the
	// scan, well beyond the 64KB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		countChunk(scanner.Text(), dict, result)
	}
	// A scanner error means the body was truncated; the counts so far stand.
}

// truncatedBody converts a dropped-connection read error into a clean EOF
// so the HTML parser repairs whatever markup arrived instead of failing.
type truncatedBody struct {
	r io.Reader
}

func (t *truncatedBody) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		err = io.EOF
	}
	return n, err
}

// countHTML tokenizes only the text nodes of an HTML body, skipping script
// and style subtrees. html.Parse repairs truncated markup, so a dropped
// connection degrades to counting the part that arrived.
func countHTML(r io.Reader, dict *dictionary.Dictionary, result *types.CountResult) {
	doc, err := html.Parse(&truncatedBody{r: r})
	if err != nil {
		return
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			countChunk(n.Data, dict, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// countChunk normalizes one chunk of body text and tallies its tokens.
// Tokens that are empty after punctuation stripping are not counted.
func countChunk(chunk string, dict *dictionary.Dictionary, result *types.CountResult) {
	cleaned := strings.Map(func(r rune) rune {
		if isPunct(r) {
			return ' '
		}
		return r
	}, chunk)

	for _, token := range strings.Fields(strings.ToLower(cleaned)) {
		result.Words++
		if dict.Contains(token) {
			result.EnglishWords++
		}
	}
}

// isPunct treats symbol runes as punctuation too, so every ASCII character
// in the classic punctuation range (including $, +, <, =, >, ^, `, |, ~)
// becomes a token separator.
func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Package nlsml parses NLSML result documents carrying interpreted
// recognition results and transcribed input.
package nlsml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Interpretation is one interpreted result entry.
type Interpretation struct {
	// Instance is the semantic payload, empty when absent.
	Instance string
	// Input is the transcribed input text, empty when absent.
	Input string
	// Confidence as reported by the recognizer, 0 when absent.
	Confidence float32
}

// Results is a parsed NLSML document.
type Results struct {
	Interpretations []Interpretation
}

type xmlDoc struct {
	XMLName         xml.Name            `xml:"result"`
	Interpretations []xmlInterpretation `xml:"interpretation"`
}

type xmlInterpretation struct {
	Confidence float32  `xml:"confidence,attr"`
	Instance   xmlCdata `xml:"instance"`
	Input      xmlCdata `xml:"input"`
}

type xmlCdata struct {
	Text string `xml:",chardata"`
}

// Parse decodes an NLSML body. Unknown elements and attributes are ignored;
// an empty or non-XML body is an error.
func Parse(body []byte) (*Results, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("nlsml: empty body")
	}

	var doc xmlDoc
	if err := xml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("nlsml: parse: %w", err)
	}

	results := &Results{}
	for _, in := range doc.Interpretations {
		results.Interpretations = append(results.Interpretations, Interpretation{
			Instance:   strings.TrimSpace(in.Instance.Text),
			Input:      strings.TrimSpace(in.Input.Text),
			Confidence: in.Confidence,
		})
	}
	return results, nil
}

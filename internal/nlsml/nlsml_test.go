package nlsml

import "testing"

func TestParse(t *testing.T) {
	body := `<?xml version="1.0"?>
<result>
  <interpretation confidence="0.92">
    <instance>open_door</instance>
    <input mode="speech">open the door</input>
  </interpretation>
</result>`

	res, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Interpretations) != 1 {
		t.Fatalf("got %d interpretations, want 1", len(res.Interpretations))
	}
	in := res.Interpretations[0]
	if in.Instance != "open_door" {
		t.Errorf("Instance = %q, want %q", in.Instance, "open_door")
	}
	if in.Input != "open the door" {
		t.Errorf("Input = %q, want %q", in.Input, "open the door")
	}
	if in.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", in.Confidence)
	}
}

func TestParseMultipleInterpretations(t *testing.T) {
	body := `<result>
  <interpretation confidence="0.8"><instance>a</instance><input>say a</input></interpretation>
  <interpretation confidence="0.3"><instance>b</instance><input>say b</input></interpretation>
</result>`

	res, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Interpretations) != 2 {
		t.Fatalf("got %d interpretations, want 2", len(res.Interpretations))
	}
	if res.Interpretations[1].Instance != "b" {
		t.Errorf("second Instance = %q, want %q", res.Interpretations[1].Instance, "b")
	}
}

func TestParseMissingFields(t *testing.T) {
	res, err := Parse([]byte(`<result><interpretation/></result>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Interpretations) != 1 {
		t.Fatalf("got %d interpretations, want 1", len(res.Interpretations))
	}
	in := res.Interpretations[0]
	if in.Instance != "" || in.Input != "" || in.Confidence != 0 {
		t.Errorf("missing fields must stay zero, got %+v", in)
	}
}

func TestParseNoInterpretations(t *testing.T) {
	res, err := Parse([]byte(`<result/>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Interpretations) != 0 {
		t.Errorf("got %d interpretations, want 0", len(res.Interpretations))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"not xml", "plain text"},
		{"truncated", `<result><interpretation>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.body)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.body)
			}
		})
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	body := `<result>
  <interpretation confidence="0.5">
    <instance>
      open_door
    </instance>
    <input> open the door </input>
  </interpretation>
</result>`

	res, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Interpretations[0].Instance != "open_door" {
		t.Errorf("Instance = %q, want trimmed %q", res.Interpretations[0].Instance, "open_door")
	}
	if res.Interpretations[0].Input != "open the door" {
		t.Errorf("Input = %q, want trimmed %q", res.Interpretations[0].Input, "open the door")
	}
}

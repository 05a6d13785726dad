package content

import "testing"

const fullDocument = `<!DOCTYPE html>
<html>
<body>
  <div id="iastBlock">
    <pre>svāmī kahe
  bhakta sāmbhaḷo

&amp; raw</pre>
  </div>
  <div id="gujaratiBlock" style="display:none">
    <pre>સ્વામી કહે
  ભક્ત સાંભળો</pre>
  </div>
</body>
</html>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name          string
		document      string
		wantPrimary   string
		wantSecondary string
	}{
		{
			name:          "both regions, whitespace and entities kept verbatim",
			document:      fullDocument,
			wantPrimary:   "svāmī kahe\n  bhakta sāmbhaḷo\n\n&amp; raw",
			wantSecondary: "સ્વામી કહે\n  ભક્ત સાંભળો",
		},
		{
			name:          "only secondary region",
			document:      `<div id="gujaratiBlock"><pre>ફક્ત</pre></div>`,
			wantPrimary:   "",
			wantSecondary: "ફક્ત",
		},
		{
			name:          "only primary region",
			document:      `<div id="iastBlock"><pre>only</pre></div>`,
			wantPrimary:   "only",
			wantSecondary: "",
		},
		{
			name:     "no regions",
			document: `<html><body><p>nothing here</p></body></html>`,
		},
		{
			name:     "empty document",
			document: ``,
		},
		{
			name:          "empty pre",
			document:      `<div id="iastBlock"><pre></pre></div><div id="gujaratiBlock"><pre></pre></div>`,
			wantPrimary:   "",
			wantSecondary: "",
		},
		{
			name:        "shortest match stops at first closing pre",
			document:    `<div id="iastBlock"><pre>one</pre></div><div id="iastBlock"><pre>two</pre></div>`,
			wantPrimary: "one",
		},
		{
			name:     "primary marker with extra attributes is not matched",
			document: `<div id="iastBlock" class="x"><pre>text</pre></div>`,
		},
		{
			name:     "unclosed region",
			document: `<div id="iastBlock"><pre>text`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract([]byte(tt.document))
			if got.Primary != tt.wantPrimary {
				t.Errorf("Extract().Primary = %q, want %q", got.Primary, tt.wantPrimary)
			}
			if got.Secondary != tt.wantSecondary {
				t.Errorf("Extract().Secondary = %q, want %q", got.Secondary, tt.wantSecondary)
			}
		})
	}
}

func TestView_Toggle(t *testing.T) {
	view := NewView(Extract([]byte(`<div id="gujaratiBlock"><pre>ફક્ત</pre></div>`)))

	if view.Script != Primary {
		t.Fatalf("NewView() script = %v, want primary", view.Script)
	}
	if view.Text() != "" {
		t.Errorf("Text() = %q, want empty primary", view.Text())
	}

	view.Toggle()
	if view.Script != Secondary || view.Text() != "ફક્ત" {
		t.Errorf("after Toggle() script = %v text = %q", view.Script, view.Text())
	}

	view.Toggle()
	if view.Script != Primary || view.Text() != "" {
		t.Errorf("after second Toggle() script = %v text = %q", view.Script, view.Text())
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		in      string
		want    Script
		wantErr bool
	}{
		{in: "", want: Primary},
		{in: "primary", want: Primary},
		{in: "secondary", want: Secondary},
		{in: "gujarati", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseScript(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScript(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScript(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if Primary.Other() != Secondary || Secondary.Other() != Primary {
		t.Error("Other() should flip the script")
	}
}

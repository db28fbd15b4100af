package ai

import (
	"strings"
	"testing"
)

func TestParseInsightResponse(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantAnalysis string
		wantErr      bool
	}{
		{
			name:         "Clean JSON",
			response:     `{"analysis": "Views are trending up.", "plan": "Make more bug-kanji videos."}`,
			wantAnalysis: "Views are trending up.",
		},
		{
			name: "JSON wrapped in prose",
			response: "Here is my assessment:\n```json\n" +
				`{"analysis": "Engagement is weak.", "plan": "Add questions."}` + "\n```\nHope this helps!",
			wantAnalysis: "Engagement is weak.",
		},
		{
			name:     "No JSON at all",
			response: "I cannot produce a report right now.",
			wantErr:  true,
		},
		{
			name:     "Empty analysis",
			response: `{"analysis": "", "plan": "something"}`,
			wantErr:  true,
		},
		{
			name:     "Closing brace before the opening one",
			response: "} {",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight, err := parseInsightResponse(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseInsightResponse() = %+v, want error", insight)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInsightResponse() error = %v", err)
			}
			if insight.Analysis != tt.wantAnalysis {
				t.Errorf("Analysis = %q, want %q", insight.Analysis, tt.wantAnalysis)
			}
		})
	}
}

func TestParseInsightResponseKeepsPlan(t *testing.T) {
	insight, err := parseInsightResponse(`{"analysis": "ok", "plan": "post twice a week"}`)
	if err != nil {
		t.Fatalf("parseInsightResponse() error = %v", err)
	}
	if !strings.Contains(insight.Plan, "twice a week") {
		t.Errorf("Plan = %q, want the plan text preserved", insight.Plan)
	}
}

package ai

import "testing"

type sample struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sample
	}{
		{
			name:  "standard json",
			input: `{"name": "Alice", "score": 0.8}`,
			want:  sample{Name: "Alice", Score: 0.8},
		},
		{
			name:  "double encoded",
			input: `"{\"name\": \"Alice\", \"score\": 0.8}"`,
			want:  sample{Name: "Alice", Score: 0.8},
		},
		{
			name:  "unquoted keys repaired",
			input: `{name: "Alice", score: 0.8}`,
			want:  sample{Name: "Alice", Score: 0.8},
		},
		{
			name:  "trailing comma repaired",
			input: `{"name": "Alice", "score": 0.8,}`,
			want:  sample{Name: "Alice", Score: 0.8},
		},
		{
			name:  "duplicate leading brace",
			input: `{{"name": "Alice", "score": 0.8}`,
			want:  sample{Name: "Alice", Score: 0.8},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"name\": \"Alice\", \"score\": 0.8}  \n",
			want:  sample{Name: "Alice", Score: 0.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(&sample{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}

	// pointer and value inputs must produce the same schema shape
	fromValue := GenerateSchema(sample{})
	if fromValue == nil {
		t.Fatal("GenerateSchema() returned nil for value input")
	}
}

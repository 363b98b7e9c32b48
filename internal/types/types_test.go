package types

import (
	"encoding/json"
	"testing"
)

func TestErrorPayload_Message(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail": "bad query"}`, "bad query"},
		{"missing detail", `{}`, ""},
		{"null detail", `{"detail": null}`, ""},
		{"number detail", `{"detail": 42}`, ""},
		{
			name: "validation list",
			body: `{"detail": [{"loc": ["query", "query"], "msg": "field required", "type": "value_error.missing"}]}`,
			want: "field required",
		},
		{
			name: "validation list with several entries",
			body: `{"detail": [{"msg": "first"}, {"msg": ""}, {"msg": "second"}]}`,
			want: "first; second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ErrorPayload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := p.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArticle_MissingFieldsDecodeEmpty(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"articolo_generato": "X"}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Body != "X" {
		t.Errorf("Body = %q, want %q", a.Body, "X")
	}
	if a.URL != "" {
		t.Errorf("URL = %q, want empty", a.URL)
	}
}

package models

import (
	"reflect"
	"testing"
)

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"trims and lowercases", []string{" Backend ", "URGENT"}, []string{"backend", "urgent"}},
		{"collapses case duplicates", []string{"Backend", "backend", "BACKEND"}, []string{"backend"}},
		{"drops blanks", []string{"", "   ", "ops"}, []string{"ops"}},
		{"keeps first-seen order", []string{"zeta", "alpha", "Zeta"}, []string{"zeta", "alpha"}},
		{"nil input", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTagNames(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTagNames(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

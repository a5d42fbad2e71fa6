package config

import (
	"reflect"
	"testing"
)

func TestParseAllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "https://site.example", []string{"https://site.example"}},
		{"multiple with spaces", "https://a.example, https://b.example", []string{"https://a.example", "https://b.example"}},
		{"trailing comma", "https://a.example,", []string{"https://a.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAllowedOrigins(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAllowedOrigins(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAppEnv(t *testing.T) {
	if env, err := ParseAppEnv("production"); err != nil || env != AppEnvProduction {
		t.Errorf("ParseAppEnv(production) = %v, %v", env, err)
	}
	if env, err := ParseAppEnv("LOCAL"); err != nil || env != AppEnvLocal {
		t.Errorf("ParseAppEnv(LOCAL) = %v, %v, want case-insensitive parse", env, err)
	}
	if _, err := ParseAppEnv("staging"); err == nil {
		t.Error("ParseAppEnv(staging) expected error")
	}
}

package service

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"user mention", "hi <@123456>", "hi @user"},
		{"nickname mention", "hi <@!123456>", "hi @user"},
		{"role mention", "ping <@&98765>", "ping @role"},
		{"channel reference", "see <#424242>", "see #channel"},
		{"escaped user mention", `hello \u003c@123\u003e`, "hello @user"},
		{"escaped angle brackets only", `a \u003cb\u003e c`, "a <b> c"},
		{"markdown untouched", "**bold** and _italic_", "**bold** and _italic_"},
		{"multiple mentions", "<@1> <@&2> <#3>", "@user @role #channel"},
		{"plain text", "no mentions here", "no mentions here"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

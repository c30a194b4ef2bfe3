package whatsapp

import "testing"

func TestLink(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		phone   string
		message string
		want    string
	}{
		{
			name:    "bare indian mobile gets country code",
			phone:   "98765 43210",
			message: "hello",
			want:    "https://wa.me/919876543210?text=hello",
		},
		{
			name:    "number with country code kept as is",
			phone:   "+91 98765 43210",
			message: "hello",
			want:    "https://wa.me/919876543210?text=hello",
		},
		{
			name:    "ten digits starting below six untouched",
			phone:   "1234567890",
			message: "hi",
			want:    "https://wa.me/1234567890?text=hi",
		},
		{
			name:    "formatted us number",
			phone:   "+1 (415) 555-0123",
			message: "Meeting at 5",
			want:    "https://wa.me/14155550123?text=Meeting%20at%205",
		},
		{
			name:    "message with reserved characters",
			phone:   "+4915112345678",
			message: "Hi & welcome, see you?",
			want:    "https://wa.me/4915112345678?text=Hi%20%26%20welcome%2C%20see%20you%3F",
		},
		{
			name:    "empty message keeps text parameter",
			phone:   "9876543210",
			message: "",
			want:    "https://wa.me/919876543210?text=",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Link(tt.phone, tt.message); got != tt.want {
				t.Fatalf("Link(%q, %q) = %q, want %q", tt.phone, tt.message, got, tt.want)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()
	if got := Digits("+91 (987) 654-3210"); got != "919876543210" {
		t.Fatalf("Digits = %q, want 919876543210", got)
	}
	if got := Digits("no digits"); got != "" {
		t.Fatalf("Digits = %q, want empty", got)
	}
}

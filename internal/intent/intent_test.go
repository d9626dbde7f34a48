package intent

import "testing"

func TestExtractTrackingNumber(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"TR123456789 numaralı kargom nerede", "TR123456789"},
		{"kargom TR987654321.", "TR987654321"},
		{"numara yok", ""},
		{"TR12345678 eksik haneli", ""},
		{"TR1234567890 fazla haneli", ""},
	}
	for _, tt := range tests {
		if got := ExtractTrackingNumber(tt.message); got != tt.want {
			t.Errorf("ExtractTrackingNumber(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantKind Kind
		wantNum  string
	}{
		{
			name:     "plain return request",
			message:  "TR123456789 numaralı kargomu iade etmek istiyorum",
			wantKind: Return,
			wantNum:  "TR123456789",
		},
		{
			name:     "plain cancel request",
			message:  "TR123456789 siparişimi iptal et",
			wantKind: Cancel,
			wantNum:  "TR123456789",
		},
		{
			name:     "cancel via vazgeç",
			message:  "TR123456789 siparişimden vazgeçtim",
			wantKind: Cancel,
			wantNum:  "TR123456789",
		},
		{
			name:     "cancel via durdur",
			message:  "TR987654321 kargoyu durdurun lütfen",
			wantKind: Cancel,
			wantNum:  "TR987654321",
		},
		{
			name:     "return via geri gönder",
			message:  "TR555666777 ürünü geri göndermek istiyorum",
			wantKind: Return,
			wantNum:  "TR555666777",
		},
		{
			// Both vocabularies appear; the delivery mention resolves the
			// overlap as a return.
			name:     "mixed wording after delivery",
			message:  "Kargoyu teslim aldım ama TR123456789 iptal et, iade istiyorum",
			wantKind: Return,
			wantNum:  "TR123456789",
		},
		{
			name:     "no tracking number",
			message:  "kargomu iade etmek istiyorum",
			wantKind: None,
			wantNum:  "",
		},
		{
			name:     "tracking number without intent wording",
			message:  "TR123456789 kargom şu an nerede",
			wantKind: None,
			wantNum:  "",
		},
		{
			name:     "uppercase wording",
			message:  "TR123456789 IADE ISTIYORUM",
			wantKind: Return,
			wantNum:  "TR123456789",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, num := Detect(tt.message)
			if kind != tt.wantKind || num != tt.wantNum {
				t.Errorf("Detect(%q) = (%q, %q), want (%q, %q)",
					tt.message, kind, num, tt.wantKind, tt.wantNum)
			}
		})
	}
}

package rmp

import "testing"

func TestEncodeSchoolID(t *testing.T) {
	// base64("School-1576")
	got := EncodeSchoolID(1576)
	want := "U2Nob29sLTE1NzY="
	if got != want {
		t.Errorf("EncodeSchoolID(1576) = %q, want %q", got, want)
	}
}

func TestDecodeLegacyID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    int64
		wantErr bool
	}{
		{"school id", "U2Nob29sLTE1NzY=", 1576, false},
		{"teacher id", "VGVhY2hlci0yMjkxMTEy", 2291112, false},
		{"not base64", "!!!", 0, true},
		{"no prefix", "MTU3Ng==", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLegacyID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeLegacyID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DecodeLegacyID(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 1576, 99999999} {
		got, err := DecodeLegacyID(EncodeSchoolID(id))
		if err != nil {
			t.Fatalf("round trip %d: %v", id, err)
		}
		if got != id {
			t.Errorf("round trip %d = %d", id, got)
		}
	}
}

package genai

import "testing"

func TestBlobFromDataURI(t *testing.T) {
	tests := []struct {
		name     string
		dataURI  string
		declared string
		wantMime string
		wantData string
		wantOK   bool
	}{
		{
			name:     "data uri wins over declared mime",
			dataURI:  "data:image/jpeg;base64,aGVsbG8=",
			declared: "image/png",
			wantMime: "image/jpeg",
			wantData: "aGVsbG8=",
			wantOK:   true,
		},
		{
			name:     "bare base64 uses declared mime",
			dataURI:  "aGVsbG8=",
			declared: "image/webp",
			wantMime: "image/webp",
			wantData: "aGVsbG8=",
			wantOK:   true,
		},
		{
			name:     "bare base64 without mime defaults to png",
			dataURI:  "aGVsbG8=",
			wantMime: "image/png",
			wantData: "aGVsbG8=",
			wantOK:   true,
		},
		{
			name:    "empty input",
			dataURI: "   ",
			wantOK:  false,
		},
		{
			name:    "prefix with no payload",
			dataURI: "data:image/png;base64,",
			wantOK:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blob, ok := BlobFromDataURI(tc.dataURI, tc.declared)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if blob.MIMEType != tc.wantMime {
				t.Errorf("MIMEType = %q, want %q", blob.MIMEType, tc.wantMime)
			}
			if blob.Data != tc.wantData {
				t.Errorf("Data = %q, want %q", blob.Data, tc.wantData)
			}
		})
	}
}

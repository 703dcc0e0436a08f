package uti

import "testing"

func TestMIMEType(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOK bool
	}{
		{"HEIC", "public.heic", "image/heic", true},
		{"JPEG", "public.jpeg", "image/jpeg", true},
		{"QuickTime", "com.apple.quicktime-movie", "video/quicktime", true},
		{"MPEG-4 video", "public.mpeg-4", "video/mp4", true},
		{"M4A audio", "com.apple.m4a-audio", "audio/mp4", true},
		{"Mixed case", "Public.HEIC", "image/heic", true},
		{"Surrounding whitespace", "  public.png ", "image/png", true},
		{"Dynamic identifier", "dyn.ah62d4rv4ge81e5pe", "", false},
		{"Empty", "", "", false},
		{"Unknown", "com.example.unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MIMEType(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("MIMEType(%q) ok = %v; want %v", tt.id, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("MIMEType(%q) = %q; want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestFromMIME(t *testing.T) {
	tests := []struct {
		mime   string
		want   string
		wantOK bool
	}{
		{"image/heic", HEIC, true},
		{"image/jpeg", JPEG, true},
		{"video/quicktime", QuickTime, true},
		{"audio/mp4", M4A, true}, // first registered wins
		{"IMAGE/PNG", PNG, true},
		{"application/x-plist; charset=utf-8", AdjustPlist, true},
		{"application/octet-stream", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, ok := FromMIME(tt.mime)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromMIME(%q) = (%q, %v); want (%q, %v)", tt.mime, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	Register("com.example.test-image", "image/x-test")

	got, ok := MIMEType("com.example.test-image")
	if !ok || got != "image/x-test" {
		t.Errorf("Expected registered mapping, got (%q, %v)", got, ok)
	}
	if !IsImage("com.example.test-image") {
		t.Error("Expected registered identifier to classify as image")
	}

	Register("", "image/x-empty")
	if _, ok := FromMIME("image/x-empty"); ok {
		t.Error("Empty identifier should not be registered")
	}
}

func TestRegister_Remap(t *testing.T) {
	Register("com.example.remap-only", "image/x-remap-old")
	Register("com.example.remap-only", "image/x-remap-new")

	if got, ok := MIMEType("com.example.remap-only"); !ok || got != "image/x-remap-new" {
		t.Errorf("Expected new mapping, got (%q, %v)", got, ok)
	}
	if id, ok := FromMIME("image/x-remap-old"); ok {
		t.Errorf("Old MIME should no longer resolve, got %q", id)
	}
	if id, ok := FromMIME("image/x-remap-new"); !ok || id != "com.example.remap-only" {
		t.Errorf("Expected new MIME to resolve to the identifier, got (%q, %v)", id, ok)
	}
}

func TestRegister_RemapFallsBackToAlias(t *testing.T) {
	Register("com.example.alias-a", "image/x-alias")
	Register("com.example.alias-b", "image/x-alias")

	if id, _ := FromMIME("image/x-alias"); id != "com.example.alias-a" {
		t.Fatalf("Expected first registration to win, got %q", id)
	}

	Register("com.example.alias-a", "image/x-alias-moved")

	if id, ok := FromMIME("image/x-alias"); !ok || id != "com.example.alias-b" {
		t.Errorf("Expected old MIME to fall back to the alias, got (%q, %v)", id, ok)
	}
	if id, ok := FromMIME("image/x-alias-moved"); !ok || id != "com.example.alias-a" {
		t.Errorf("Expected moved identifier for new MIME, got (%q, %v)", id, ok)
	}

	// Every identifier FromMIME answers maps back to the same MIME
	for _, mime := range []string{"image/x-alias", "image/x-alias-moved"} {
		id, _ := FromMIME(mime)
		if got, _ := MIMEType(id); got != mime {
			t.Errorf("FromMIME(%q) = %q, whose MIME is %q", mime, id, got)
		}
	}
}

func TestTopLevelHelpers(t *testing.T) {
	if !IsImage(HEIC) || IsVideo(HEIC) || IsAudio(HEIC) {
		t.Error("HEIC should only be an image")
	}
	if !IsVideo(QuickTime) || IsImage(QuickTime) {
		t.Error("QuickTime should only be a video")
	}
	if !IsAudio(MP3) {
		t.Error("MP3 should be audio")
	}
	if IsImage("com.example.unknown") {
		t.Error("Unknown identifier should not be an image")
	}
}

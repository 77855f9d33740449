package domain

import (
	"errors"
	"testing"
)

func TestStrategyRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     StrategyRequest
		wantErr bool
	}{
		{name: "valid", req: StrategyRequest{Title: "My Video", Niche: "tech"}},
		{name: "missing title", req: StrategyRequest{Niche: "tech"}, wantErr: true},
		{name: "missing niche", req: StrategyRequest{Title: "My Video"}, wantErr: true},
		{name: "whitespace only title", req: StrategyRequest{Title: "   ", Niche: "tech"}, wantErr: true},
		{name: "emotion and ratio not required", req: StrategyRequest{Title: "t", Niche: "n"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("Validate() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestNormalizeEmotion(t *testing.T) {
	tests := []struct {
		in   string
		want Emotion
	}{
		{"shock", EmotionShock},
		{"  Excitement ", EmotionExcitement},
		{"FEAR", EmotionFear},
		{"urgency", EmotionUrgency},
		{"curiosity", EmotionCuriosity},
		{"", EmotionCuriosity},
		{"rage", EmotionCuriosity},
	}

	for _, tc := range tests {
		if got := NormalizeEmotion(tc.in); got != tc.want {
			t.Errorf("NormalizeEmotion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want AspectRatio
	}{
		{"16:9", Ratio16x9},
		{"9:16", Ratio9x16},
		{"1:1", Ratio1x1},
		{"4:3", Ratio4x3},
		{"", Ratio16x9},
		{"21:9", Ratio16x9},
	}

	for _, tc := range tests {
		if got := NormalizeAspectRatio(tc.in); got != tc.want {
			t.Errorf("NormalizeAspectRatio(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDurationUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "milliseconds", in: "d: 500ms", want: 500 * time.Millisecond},
		{name: "seconds", in: "d: 30s", want: 30 * time.Second},
		{name: "compound", in: "d: 1m30s", want: 90 * time.Second},
		{name: "quoted", in: `d: "2s"`, want: 2 * time.Second},
		{name: "bare number rejected", in: "d: 5", wantErr: true},
		{name: "garbage rejected", in: "d: soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				D Duration `yaml:"d"`
			}
			err := yaml.Unmarshal([]byte(tt.in), &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out.D.Std() != tt.want {
				t.Errorf("Duration = %v, want %v", out.D, tt.want)
			}
		})
	}
}

package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{RangeStart: 0, RangeEnd: 3699, BatchSize: 100, Workers: 1}, false},
		{"zero batch size", Config{RangeEnd: 100, Workers: 1}, true},
		{"negative start", Config{RangeStart: -1, RangeEnd: 10, BatchSize: 10, Workers: 1}, true},
		{"end before start", Config{RangeStart: 100, RangeEnd: 0, BatchSize: 10, Workers: 1}, true},
		{"no workers", Config{RangeEnd: 100, BatchSize: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

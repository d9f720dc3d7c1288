package config

import "testing"

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr bool
	}{{
		name:   "defaults are valid",
		config: Config{Image: "disk.img"},
	}, {
		name:    "missing image",
		config:  Config{},
		wantErr: true,
	}, {
		name:    "negative workers",
		config:  Config{Image: "disk.img", Workers: -1},
		wantErr: true,
	}, {
		name:    "negative queue depth",
		config:  Config{Image: "disk.img", QueueDepth: -4},
		wantErr: true,
	}, {
		name:   "explicit sizes",
		config: Config{Image: "disk.img", Workers: 4, QueueDepth: 128},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("wanted error; found nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("wanted success; found %v", err)
			}
		})
	}
}

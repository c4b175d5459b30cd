package embedded

import (
	"strings"
	"testing"
)

// TestReadFileProfiles 测试内置预设文件可读取
func TestReadFileProfiles(t *testing.T) {
	data, err := ReadFile(ProfilesPath)
	if err != nil {
		t.Fatalf("ReadFile(%q) failed: %v", ProfilesPath, err)
	}
	if !strings.Contains(string(data), "profiles:") {
		t.Error("profiles.yaml should contain a profiles section")
	}
}

// TestPathNormalization 测试 "./" 前缀和反斜杠的处理
func TestPathNormalization(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/profiles.yaml", false},
		{"dot prefix", "./data/profiles.yaml", false},
		{"unknown prefix", "assets/profiles.yaml", true},
		{"missing file", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	if !Exists(ProfilesPath) {
		t.Errorf("Exists(%q) = false", ProfilesPath)
	}
	if Exists("data/nope.yaml") {
		t.Error("Exists should be false for missing files")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) == 0 {
		t.Error("Glob should find at least one yaml file")
	}
}

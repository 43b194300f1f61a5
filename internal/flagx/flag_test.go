package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", ":50051", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":50051"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=kms.json", "-a", ":1"},
			allowed: []string{"-config"},
			want:    []string{"-config=kms.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "dangling flag kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-t", "5"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "value may start with dash in equals form",
			args:    []string{"-config=-odd.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=-odd.json"},
		},
		{
			name:    "repeats kept in order",
			args:    []string{"-s", "memory", "-d", "dsn", "-s", "postgres"},
			allowed: []string{"-s"},
			want:    []string{"-s", "memory", "-s", "postgres"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFrom(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/kms.json"}, "/etc/kms.json"},
		{"long", []string{"-config", "/etc/kms.json"}, "/etc/kms.json"},
		{"absent", []string{"-a", ":1"}, ""},
		{"last wins", []string{"-c", "one.json", "-config=two.json"}, "two.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFrom(tt.args))
		})
	}
}

func TestConfigFile_UsesProcessArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-t", "3", "-c", "cfg.json"}
	assert.Equal(t, "cfg.json", ConfigFile())
}

package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	configFlags := map[string]bool{"-c": true, "--config": true}

	tests := []struct {
		name    string
		args    []string
		allowed map[string]bool
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: configFlags,
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: configFlags,
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: configFlags,
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept as-is",
			args:    []string{"-c"},
			allowed: configFlags,
			want:    []string{"-c"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-c", "-notvalue"},
			allowed: configFlags,
			want:    []string{"-c"},
		},
		{
			name:    "boolean flag does not swallow positional",
			args:    []string{"-g", "positional", "-a", "http://api"},
			allowed: map[string]bool{"-g": false, "-a": true},
			want:    []string{"-g", "-a", "http://api"},
		},
		{
			name:    "boolean flag with explicit value",
			args:    []string{"-g=false"},
			allowed: map[string]bool{"-g": false},
			want:    []string{"-g=false"},
		},
		{
			name:    "repeated allowed flag is preserved in order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: map[string]bool{"-c": true},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: configFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"-config", "/path/long.json"}))
	})

	t.Run("last flag wins", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/etc/storykeeper.json")
		assert.Equal(t, "/etc/storykeeper.json", ConfigPath([]string{"-x", "1"}))
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/etc/storykeeper.json")
		assert.Equal(t, "local.json", ConfigPath([]string{"-c", "local.json"}))
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Empty(t, ConfigPath(nil))
	})
}

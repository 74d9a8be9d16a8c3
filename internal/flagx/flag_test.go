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
			args:    []string{"-a", ":8000", "-k", "key"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":8000"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://x", "-k", "key"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://x"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-a", "-d", "dsn"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", "-d", "dsn"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "play", "--y=2"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "repeats preserved in order",
			args:    []string{"-n", "3", "-n", "5"},
			allowed: []string{"-n"},
			want:    []string{"-n", "3", "-n", "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"bin", "-c", "/etc/streetsmarts.json"}
	assert.Equal(t, "/etc/streetsmarts.json", JsonConfigFlags())

	os.Args = []string{"bin", "-a", ":9000", "-config=/tmp/s.json"}
	assert.Equal(t, "/tmp/s.json", JsonConfigFlags())

	os.Args = []string{"bin", "-a", ":9000"}
	assert.Empty(t, JsonConfigFlags())
}

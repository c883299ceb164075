package mongos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions()

	assert.Equal(t, "127.0.0.1", opts.Host)
	assert.Equal(t, 27017, opts.Port)
	assert.Equal(t, uint64(100), opts.MaxPoolSize)
	assert.Equal(t, uint64(10), opts.MinPoolSize)
	assert.Equal(t, 10*time.Second, opts.ConnectTimeout)
	assert.Equal(t, "admin", opts.AuthSource)
	assert.False(t, opts.Direct)
}

func TestOptions_StringRedactsPassword(t *testing.T) {
	opts := NewOptions()
	opts.Username = "app"
	opts.Password = "hunter2"

	s := opts.String()
	assert.Contains(t, s, redactedPassword)
	assert.NotContains(t, s, "hunter2")

	opts.Password = ""
	assert.NotContains(t, opts.String(), redactedPassword)
}

func TestOptions_MarshalJSONRedactsPassword(t *testing.T) {
	opts := NewOptions()
	opts.Password = "hunter2"

	data, err := json.Marshal(opts)
	require.NoError(t, err)

	assert.Contains(t, string(data), redactedPassword)
	assert.NotContains(t, string(data), "hunter2")
}

func TestOptions_Validate(t *testing.T) {
	t.Setenv(passwordEnvVar, "")

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(o *Options) {}},
		{
			name:    "missing host",
			mutate:  func(o *Options) { o.Host = "" },
			wantErr: true,
		},
		{
			name:    "bad port",
			mutate:  func(o *Options) { o.Port = -1 },
			wantErr: true,
		},
		{
			name:   "uri skips host validation",
			mutate: func(o *Options) { o.Host = ""; o.URI = "mongodb://db1:27017/game" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.mutate(opts)

			err := opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions_CompletePasswordFromEnv(t *testing.T) {
	t.Setenv(passwordEnvVar, "from-env")

	opts := NewOptions()
	require.NoError(t, opts.Complete())
	assert.Equal(t, "from-env", opts.Password)
}

func TestOptions_CompleteKeepsExplicitPassword(t *testing.T) {
	t.Setenv(passwordEnvVar, "from-env")

	opts := NewOptions()
	opts.Password = "explicit"
	require.NoError(t, opts.Complete())
	assert.Equal(t, "explicit", opts.Password)
}

func TestOptions_ValidateLeavesPasswordAlone(t *testing.T) {
	t.Setenv(passwordEnvVar, "from-env")

	opts := NewOptions()
	require.NoError(t, opts.Validate())
	assert.Empty(t, opts.Password)
}

func TestOptions_AddFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs, "mongo-")

	err := fs.Parse([]string{
		"--mongo-host=db1",
		"--mongo-port=27018",
		"--mongo-database=game",
		"--mongo-connect-timeout=5s",
		"--mongo-direct",
	})
	require.NoError(t, err)

	assert.Equal(t, "db1", opts.Host)
	assert.Equal(t, 27018, opts.Port)
	assert.Equal(t, "game", opts.Database)
	assert.Equal(t, 5*time.Second, opts.ConnectTimeout)
	assert.True(t, opts.Direct)
}

package sequence

import (
	"context"
	"fmt"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubeprep/kubeprep/internal/config"
)

func TestTargetUser_Resolves(t *testing.T) {
	t.Parallel()
	ctx := &Context{
		Context: context.Background(),
		Config:  &config.Config{User: "alice"},
		LookupUser: func(name string) (*user.User, error) {
			return &user.User{Username: name, Uid: "1000", Gid: "1000", HomeDir: "/home/" + name}, nil
		},
	}

	target, err := ctx.TargetUser()
	require.NoError(t, err)
	assert.Equal(t, "alice", target.Name)
	assert.Equal(t, "/home/alice", target.Home)
	assert.Equal(t, 1000, target.UID)
	assert.Equal(t, 1000, target.GID)
}

func TestTargetUser_UnknownUser(t *testing.T) {
	t.Parallel()
	ctx := &Context{
		Context: context.Background(),
		Config:  &config.Config{User: "ghost"},
		LookupUser: func(name string) (*user.User, error) {
			return nil, fmt.Errorf("user: unknown user %s", name)
		},
	}

	_, err := ctx.TargetUser()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up user ghost")
}

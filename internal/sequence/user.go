package sequence

import (
	"fmt"
	"strconv"
)

// TargetUser is the resolved owner of user-level provisioning artifacts.
type TargetUser struct {
	Name string
	Home string
	UID  int
	GID  int
}

// TargetUser resolves the configured user through the context's lookup
// function.
func (c *Context) TargetUser() (*TargetUser, error) {
	name := c.Config.User
	u, err := c.LookupUser(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric uid %q", name, u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric gid %q", name, u.Gid)
	}
	return &TargetUser{Name: name, Home: u.HomeDir, UID: uid, GID: gid}, nil
}

package procattr

import (
	"fmt"
	"os"
	"sort"
	"syscall"

	"github.com/moby/sys/user"
)

// Env builds the child's environment. A nil map keeps the harness's own
// environment; otherwise only the given variables are passed.
func Env(envs map[string]string) []string {
	if envs == nil {
		return os.Environ()
	}

	env := make([]string, 0, len(envs))
	for k, v := range envs {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// Credential resolves the run-as user and group. Both empty means the child
// runs as the harness user and nil is returned.
func Credential(username, groupname string) (*syscall.Credential, error) {
	if username == "" && groupname == "" {
		return nil, nil
	}

	uid, gid := os.Getuid(), os.Getgid()

	if username != "" {
		u, err := user.LookupUser(username)
		if err != nil {
			return nil, fmt.Errorf("unknown user '%s': %w", username, err)
		}
		uid, gid = u.Uid, u.Gid
	}

	if groupname != "" {
		g, err := user.LookupGroup(groupname)
		if err != nil {
			return nil, fmt.Errorf("unknown group '%s': %w", groupname, err)
		}
		gid = g.Gid
	}

	return &syscall.Credential{
		Uid:    uint32(uid),
		Gid:    uint32(gid),
		Groups: []uint32{uint32(gid)},
	}, nil
}

// SysProcAttr returns the spawn attributes for the checker. Setpgid keeps a
// terminal interrupt from reaching the child before the harness decides
// what to do with it.
func SysProcAttr(cred *syscall.Credential) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid:    true,
		Credential: cred,
	}
}

package provision

import (
	"fmt"
	"io"
	"os"

	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// Action is one identity-creation step in the replication artifact.
type Action struct {
	Kind catalog.Kind `json:"kind" yaml:"kind"`
	Name string       `json:"name" yaml:"name"`
	ID   uint32       `json:"id" yaml:"id"`

	// PrimaryGroup / PrimaryGID apply to users only.
	PrimaryGroup string `json:"primary_group,omitempty" yaml:"primary_group,omitempty"`
	PrimaryGID   uint32 `json:"primary_gid,omitempty" yaml:"primary_gid,omitempty"`

	// SecondaryGroups are the user's additional memberships.
	SecondaryGroups []string `json:"secondary_groups,omitempty" yaml:"secondary_groups,omitempty"`
}

// Artifact is the ordered, replayable description of the identities a run
// intends to exist. It is produced on every run, dry or not, and rendered as
// a POSIX shell script for hosts that cannot reach the backend.
type Artifact struct {
	actions []Action
}

// AddGroup appends a group-creation action.
func (a *Artifact) AddGroup(name string, gid uint32) {
	a.actions = append(a.actions, Action{Kind: catalog.KindGroup, Name: name, ID: gid})
}

// AddUser appends a user-creation action with its memberships.
func (a *Artifact) AddUser(name string, uid uint32, primaryGroup string, primaryGID uint32, secondaryGroups []string) {
	a.actions = append(a.actions, Action{
		Kind:            catalog.KindUser,
		Name:            name,
		ID:              uid,
		PrimaryGroup:    primaryGroup,
		PrimaryGID:      primaryGID,
		SecondaryGroups: append([]string(nil), secondaryGroups...),
	})
}

// Actions returns the ordered action list.
func (a *Artifact) Actions() []Action {
	return append([]Action(nil), a.actions...)
}

// WriteScript renders the artifact as a shell script usable with any POSIX
// account-management toolchain.
func (a *Artifact) WriteScript(w io.Writer) error {
	if _, err := fmt.Fprint(w, "#!/usr/bin/env sh\nset -o errexit\nset -o xtrace\n"); err != nil {
		return err
	}
	for _, action := range a.actions {
		var err error
		switch action.Kind {
		case catalog.KindGroup:
			_, err = fmt.Fprintf(w, "groupadd --gid %d %s\n", action.ID, action.Name)
		case catalog.KindUser:
			_, err = fmt.Fprintf(w, "useradd --uid %d --gid %d %s\n", action.ID, action.PrimaryGID, action.Name)
			if err == nil {
				for _, group := range action.SecondaryGroups {
					if _, err = fmt.Fprintf(w, "usermod -a -G %s %s\n", group, action.Name); err != nil {
						break
					}
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteScriptFile writes the rendered script to path, executable.
func (a *Artifact) WriteScriptFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("creating replication script %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := a.WriteScript(f); err != nil {
		return fmt.Errorf("writing replication script %s: %w", path, err)
	}
	return nil
}

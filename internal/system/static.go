package system

import (
	"context"
	"errors"
)

// errUnavailable is what StaticSource returns for attributes marked missing.
var errUnavailable = errors.New("attribute unavailable")

// StaticSource serves a fixed identity. Attributes listed in Fail return an
// error instead of their value.
type StaticSource struct {
	Arch    string
	Release string
	Family  string
	Host    string
	Home    string

	Fail map[string]bool
}

func (s *StaticSource) Architecture(_ context.Context) (string, error) {
	return s.get(AttrArchitecture, s.Arch)
}

func (s *StaticSource) OSRelease(_ context.Context) (string, error) {
	return s.get(AttrOSRelease, s.Release)
}

func (s *StaticSource) OSFamily(_ context.Context) (string, error) {
	return s.get(AttrOSFamily, s.Family)
}

func (s *StaticSource) Hostname(_ context.Context) (string, error) {
	return s.get(AttrHostname, s.Host)
}

func (s *StaticSource) HomeDir(_ context.Context) (string, error) {
	return s.get(AttrHomeDir, s.Home)
}

func (s *StaticSource) get(attr, value string) (string, error) {
	if s.Fail[attr] {
		return "", errUnavailable
	}
	return value, nil
}

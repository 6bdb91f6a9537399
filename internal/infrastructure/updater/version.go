package updater

import (
	"fmt"
	"strconv"
	"strings"
)

// Version é uma versão MAJOR.MINOR.PATCH comparada numericamente parte a parte.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion aceita "v" opcional e partes ausentes (tratadas como zero).
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if raw == "" {
		return Version{}, fmt.Errorf("versão vazia")
	}

	parts := strings.Split(raw, ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("versão inválida %q", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("versão inválida %q", s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare devolve -1, 0 ou 1: major primeiro, depois minor, depois patch.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

// IsNewer informa se remote é estritamente mais nova que local.
func IsNewer(remote, local string) (bool, error) {
	r, err := ParseVersion(remote)
	if err != nil {
		return false, err
	}
	l, err := ParseVersion(local)
	if err != nil {
		return false, err
	}
	return r.Compare(l) > 0, nil
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

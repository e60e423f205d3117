package entity

import (
	"fmt"
	"strings"
)

// Stat names a ranking column. Only the values below may ever reach SQL.
type Stat string

const (
	StatHP             Stat = "hp"
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpecialAttack  Stat = "special_attack"
	StatSpecialDefense Stat = "special_defense"
	StatSpeed          Stat = "speed"
)

// AllStats lists the allowed stats in display order.
var AllStats = []Stat{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

func (s Stat) Valid() bool {
	switch s {
	case StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed:
		return true
	}
	return false
}

func (s Stat) String() string { return string(s) }

// ParseStat accepts the canonical names plus the PokeAPI hyphenated spelling.
func ParseStat(raw string) (Stat, error) {
	s := Stat(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	if !s.Valid() {
		return "", fmt.Errorf("stat %q is not one of %v", raw, AllStats)
	}
	return s, nil
}

// StatNames returns AllStats as plain strings, e.g. for JSON schema enums.
func StatNames() []string {
	names := make([]string, len(AllStats))
	for i, s := range AllStats {
		names[i] = string(s)
	}
	return names
}

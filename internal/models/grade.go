package models

import "slices"

type ClimbStyle string

const (
	StyleBoulder ClimbStyle = "boulder"
	StyleRope    ClimbStyle = "rope"
)

// Grade is either a Yosemite decimal rope grade ("5.10a") or a V-scale
// boulder grade ("v4"), stored exactly as written in the log.
type Grade string

var ropeGrades = []Grade{
	"5.intro", "5.6", "5.7", "5.8", "5.9",
	"5.10a", "5.10b", "5.10c", "5.10d",
	"5.11a", "5.11b", "5.11c", "5.11d",
	"5.12a", "5.12b", "5.12c", "5.12d",
	"5.13a", "5.13b", "5.13c", "5.13d",
	"5.14a", "5.14b", "5.14c", "5.14d",
	"5.15a", "5.15b", "5.15c", "5.15d",
}

var boulderGrades = []Grade{
	"vintro", "v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8",
	"v9", "v10", "v11", "v12", "v13", "v14", "v15", "v16", "v17",
}

func (g Grade) IsRope() bool {
	return slices.Contains(ropeGrades, g)
}

func (g Grade) IsBoulder() bool {
	return slices.Contains(boulderGrades, g)
}

func (g Grade) Valid() bool {
	return g.IsRope() || g.IsBoulder()
}

func (s ClimbStyle) String() string {
	switch s {
	case StyleBoulder:
		return "Boulder"
	case StyleRope:
		return "Rope"
	default:
		return string(s)
	}
}

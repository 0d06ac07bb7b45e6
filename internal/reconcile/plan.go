package reconcile

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/climblog/climblog/internal/logfile"
)

// Plan is the diff of one local listing against one remote listing.
type Plan struct {
	Local     mapset.Set[string]
	Remote    mapset.Set[string]
	Uploads   []Transfer
	Downloads []Transfer
}

func NewPlan(local, remote mapset.Set[string]) *Plan {
	return &Plan{
		Local:     local,
		Remote:    remote,
		Uploads:   UploadTargets(local, remote),
		Downloads: DownloadTargets(local, remote),
	}
}

// UploadTargets returns the local files whose namespaced key is missing from
// remote. Files without a category are never targets.
func UploadTargets(local, remote mapset.Set[string]) []Transfer {
	var targets []Transfer
	for filename := range local.Iter() {
		key, ok := logfile.RemoteKey(filename)
		if !ok || remote.Contains(key) {
			continue
		}
		targets = append(targets, Transfer{Action: ActionUpload, Key: key, Filename: filename})
	}
	sortTransfers(targets)
	return targets
}

// DownloadTargets returns the remote keys whose filename is missing locally.
// Keys whose filename has no category are ignored. When several keys share a
// filename only one is downloaded: the key in the filename's own namespace if
// present, else the lowest key.
func DownloadTargets(local, remote mapset.Set[string]) []Transfer {
	chosen := make(map[string]string)
	for key := range remote.Iter() {
		filename := logfile.FilenameFromKey(key)
		if !logfile.Classify(filename).Known() || local.Contains(filename) {
			continue
		}
		if prev, ok := chosen[filename]; ok && !preferKey(filename, key, prev) {
			continue
		}
		chosen[filename] = key
	}

	targets := make([]Transfer, 0, len(chosen))
	for filename, key := range chosen {
		targets = append(targets, Transfer{Action: ActionDownload, Key: key, Filename: filename})
	}
	sortTransfers(targets)
	return targets
}

func preferKey(filename, candidate, current string) bool {
	canonical, _ := logfile.RemoteKey(filename)
	switch {
	case current == canonical:
		return false
	case candidate == canonical:
		return true
	default:
		return candidate < current
	}
}

// InSync counts the files that need no transfer in the given direction.
func (p *Plan) InSync(action Action) int {
	if action == ActionUpload {
		return p.Local.Cardinality() - len(p.Uploads)
	}

	inSync := mapset.NewThreadUnsafeSet[string]()
	for key := range p.Remote.Iter() {
		filename := logfile.FilenameFromKey(key)
		if logfile.Classify(filename).Known() && p.Local.Contains(filename) {
			inSync.Add(filename)
		}
	}
	return inSync.Cardinality()
}

func (p *Plan) Targets(action Action) []Transfer {
	if action == ActionUpload {
		return p.Uploads
	}
	return p.Downloads
}

package logfile

import "strings"

// RemoteKey returns "<namespace>/<filename>" for a classified filename and
// false for anything that classifies as Unknown.
func RemoteKey(filename string) (string, bool) {
	c := Classify(filename)
	if !c.Known() {
		return "", false
	}
	return c.Namespace() + "/" + filename, true
}

// FilenameFromKey returns the part of key after its last slash.
func FilenameFromKey(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

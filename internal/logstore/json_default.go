//go:build !sonic

package logstore

import "github.com/goccy/go-json"

var (
	jsonMarshalIndent = json.MarshalIndent
	jsonUnmarshal     = json.Unmarshal
)

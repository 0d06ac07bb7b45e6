//go:build sonic

package logstore

import "github.com/bytedance/sonic"

var (
	jsonMarshalIndent = sonic.ConfigStd.MarshalIndent
	jsonUnmarshal     = sonic.ConfigStd.Unmarshal
)

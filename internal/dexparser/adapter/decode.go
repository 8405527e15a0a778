package adapter

import (
	"encoding/base64"
	"encoding/json"

	"github.com/mr-tron/base58"
)

// decodeInstructionData tries base58, then base64, then raw UTF-8 bytes; it
// never fails (spec §4.3).
func decodeInstructionData(raw json.RawMessage) []byte {
	s, ok := unquoteJSONString(raw)
	if !ok || s == "" {
		return nil
	}
	if decoded, err := base58.Decode(s); err == nil {
		return decoded
	}
	if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
		return decoded
	}
	return []byte(s)
}

// unquoteJSONString unwraps a JSON string value; it returns ok=false for
// null, non-string, or empty raw input.
func unquoteJSONString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeInstructionAccounts accepts either a list of resolved base58 account
// strings (parsed encoding) or a list of indices into an account-key table
// (compiled encoding).
func decodeInstructionAccounts(raw json.RawMessage, keys []string) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return asStrings
	}
	var asIndices []int
	if err := json.Unmarshal(raw, &asIndices); err == nil {
		out := make([]string, 0, len(asIndices))
		for _, idx := range asIndices {
			if idx >= 0 && idx < len(keys) {
				out = append(out, keys[idx])
			}
		}
		return out
	}
	return nil
}

// firstDataByte returns the first byte of decoded instruction data, which
// is the opcode SPL token instructions dispatch on in compiled encoding.
// It reports false for empty data; parsed-encoding type names are not
// handled here.
func firstDataByte(data []byte) (byte, bool) {
	if len(data) == 0 {
		return 0, false
	}
	return data[0], true
}

